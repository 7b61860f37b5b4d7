package store

import (
	"context"
	"errors"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and make it obvious
// which operations participate in a transaction.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	Courses() Courses
	Memberships() Memberships
	Chapters() Chapters
	Questions() Questions
	Quizzes() Quizzes
	Attempts() Attempts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations (refresh rotation,
	// answer grading).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up by lowercase email, used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByGoogleSub looks up by linked Google OIDC subject.
	GetUserByGoogleSub(ctx context.Context, sub string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates first/last name and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, firstName, lastName string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// LinkGoogleSub attaches a Google OIDC subject to an existing account.
	LinkGoogleSub(ctx context.Context, userID, sub string) error

	// SetActive toggles the account's active flag.
	SetActive(ctx context.Context, userID string, active bool) error
}

type RefreshTokens interface {
	// CreateRefreshToken stores a new refresh token record.
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its SHA-256 fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// RevokeRefreshToken flips revoked=1 and bumps updated_at.
	RevokeRefreshToken(ctx context.Context, hash string) error

	// RevokeAllUserRefreshTokens bulk revocation for a user (e.g. password
	// change, account deactivation).
	RevokeAllUserRefreshTokens(ctx context.Context, userID string) error

	// DeleteExpiredRefreshTokens removes expired and revoked rows
	// (housekeeping).
	DeleteExpiredRefreshTokens(ctx context.Context) error
}

type Courses interface {
	// CreateCourse inserts a new course.
	CreateCourse(ctx context.Context, c domain.Course) error

	// GetCourseByID returns a course by id.
	GetCourseByID(ctx context.Context, id string) (domain.Course, error)

	// GetCourseByJoinCode returns the course whose join code matches and is
	// currently enabled.
	GetCourseByJoinCode(ctx context.Context, code string) (domain.Course, error)

	// ListCoursesForUser returns courses the user is a member of, newest
	// first.
	ListCoursesForUser(ctx context.Context, userID string) ([]domain.Course, error)

	// SlugExists reports whether a course already uses the slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// UpdateCourse mutates title, slug and description.
	UpdateCourse(ctx context.Context, c domain.Course) error

	// UpdateCourseStatus transitions the lifecycle status.
	UpdateCourseStatus(ctx context.Context, courseID string, status domain.CourseStatus) error

	// UpdateJoinCode sets the join code value and enabled flag.
	UpdateJoinCode(ctx context.Context, courseID, code string, enabled bool) error

	// DeleteCourse cascades to memberships, chapters, questions, quizzes and
	// attempts (per schema).
	DeleteCourse(ctx context.Context, courseID string) error
}

// CourseMember pairs a membership with its user for member listings.
type CourseMember struct {
	Membership domain.Membership
	User       domain.User
}

type Memberships interface {
	// CreateMembership inserts a membership. (course, user) unique.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// GetMembership returns the membership for a (course, user) pair.
	GetMembership(ctx context.Context, courseID, userID string) (domain.Membership, error)

	// ListCourseMembers returns all members of a course with their user
	// records, owner first then by join date.
	ListCourseMembers(ctx context.Context, courseID string) ([]CourseMember, error)

	// DeleteMembership removes a user from a course.
	DeleteMembership(ctx context.Context, courseID, userID string) error
}

type Chapters interface {
	CreateChapter(ctx context.Context, c domain.Chapter) error
	GetChapterByID(ctx context.Context, id string) (domain.Chapter, error)

	// ListChaptersByCourse returns chapters ordered by position.
	ListChaptersByCourse(ctx context.Context, courseID string) ([]domain.Chapter, error)

	UpdateChapter(ctx context.Context, c domain.Chapter) error
	DeleteChapter(ctx context.Context, id string) error
}

type Questions interface {
	CreateQuestion(ctx context.Context, q domain.Question) error
	GetQuestionByID(ctx context.Context, id string) (domain.Question, error)
	ListQuestionsByChapter(ctx context.Context, chapterID string) ([]domain.Question, error)

	// ListUnansweredQuestions returns active questions in the chapter that
	// the attempt has not answered yet. An empty difficulty means any.
	ListUnansweredQuestions(
		ctx context.Context,
		chapterID, attemptID string,
		difficulty domain.Difficulty,
	) ([]domain.Question, error)

	UpdateQuestion(ctx context.Context, q domain.Question) error
	DeleteQuestion(ctx context.Context, id string) error
}

type Quizzes interface {
	CreateQuiz(ctx context.Context, q domain.Quiz) error
	GetQuizByID(ctx context.Context, id string) (domain.Quiz, error)
	ListQuizzesByChapter(ctx context.Context, chapterID string) ([]domain.Quiz, error)

	// ListPublishedQuizzesForUser returns published quizzes in courses the
	// user belongs to.
	ListPublishedQuizzesForUser(ctx context.Context, userID string) ([]domain.Quiz, error)

	UpdateQuiz(ctx context.Context, q domain.Quiz) error
	DeleteQuiz(ctx context.Context, id string) error
}

type Attempts interface {
	CreateAttempt(ctx context.Context, a domain.Attempt) error
	GetAttemptByID(ctx context.Context, id string) (domain.Attempt, error)

	// GetInProgressAttempt returns the user's open attempt on a quiz, if any.
	GetInProgressAttempt(ctx context.Context, quizID, userID string) (domain.Attempt, error)

	// UpdateAttemptProgress writes status, difficulty, current question and
	// counters after grading an answer.
	UpdateAttemptProgress(ctx context.Context, a domain.Attempt) error

	// CreateAnswer records a graded response. Duplicate (attempt, question)
	// pairs return ErrAlreadyExists.
	CreateAnswer(ctx context.Context, ans domain.Answer) error

	ListAnswersByAttempt(ctx context.Context, attemptID string) ([]domain.Answer, error)
}
