package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/idx"
)

var ErrQuizUnpublished = errors.New("quiz_unpublished")

// QuizService owns course content: chapters, the question bank and
// quizzes. All writes are staff-gated through the course membership.
type QuizService struct {
	Store store.Store
}

// --- chapters ---

func (s *QuizService) CreateChapter(
	ctx context.Context,
	courseID, userID, title string,
	position int,
) (domain.Chapter, error) {
	if err := s.requireCourseStaff(ctx, courseID, userID); err != nil {
		return domain.Chapter{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Chapter{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	ch := domain.Chapter{
		ID:        idx.New().String(),
		CourseID:  courseID,
		Title:     title,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Chapters().CreateChapter(ctx, ch); err != nil {
		return domain.Chapter{}, err
	}
	return ch, nil
}

func (s *QuizService) ListChapters(
	ctx context.Context,
	courseID, userID string,
) ([]domain.Chapter, error) {
	if err := s.requireCourseMember(ctx, courseID, userID); err != nil {
		return nil, err
	}
	return s.Store.Chapters().ListChaptersByCourse(ctx, courseID)
}

func (s *QuizService) UpdateChapter(
	ctx context.Context,
	chapterID, userID, title string,
	position int,
) (domain.Chapter, error) {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.Chapter{}, err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return domain.Chapter{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Chapter{}, ErrInvalidInput
	}
	ch.Title = title
	ch.Position = position
	ch.UpdatedAt = time.Now().UTC()

	if err := s.Store.Chapters().UpdateChapter(ctx, ch); err != nil {
		return domain.Chapter{}, err
	}
	return ch, nil
}

func (s *QuizService) DeleteChapter(ctx context.Context, chapterID, userID string) error {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return err
	}
	return s.Store.Chapters().DeleteChapter(ctx, chapterID)
}

// --- questions ---

func (s *QuizService) CreateQuestion(
	ctx context.Context,
	chapterID, userID, prompt string,
	choices []string,
	correctIndex int,
	difficulty domain.Difficulty,
) (domain.Question, error) {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.Question{}, err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return domain.Question{}, err
	}
	if err := validateQuestion(prompt, choices, correctIndex, difficulty); err != nil {
		return domain.Question{}, err
	}

	now := time.Now().UTC()
	q := domain.Question{
		ID:           idx.New().String(),
		ChapterID:    chapterID,
		Prompt:       strings.TrimSpace(prompt),
		Choices:      choices,
		CorrectIndex: correctIndex,
		Difficulty:   difficulty,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Questions().CreateQuestion(ctx, q); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (s *QuizService) ListQuestions(
	ctx context.Context,
	chapterID, userID string,
) ([]domain.Question, error) {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	// The bank exposes correct answers, so it is staff-only.
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return nil, err
	}
	return s.Store.Questions().ListQuestionsByChapter(ctx, chapterID)
}

func (s *QuizService) UpdateQuestion(
	ctx context.Context,
	questionID, userID, prompt string,
	choices []string,
	correctIndex int,
	difficulty domain.Difficulty,
	active bool,
) (domain.Question, error) {
	q, err := s.Store.Questions().GetQuestionByID(ctx, questionID)
	if err != nil {
		return domain.Question{}, err
	}
	ch, err := s.Store.Chapters().GetChapterByID(ctx, q.ChapterID)
	if err != nil {
		return domain.Question{}, err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return domain.Question{}, err
	}
	if err := validateQuestion(prompt, choices, correctIndex, difficulty); err != nil {
		return domain.Question{}, err
	}

	q.Prompt = strings.TrimSpace(prompt)
	q.Choices = choices
	q.CorrectIndex = correctIndex
	q.Difficulty = difficulty
	q.Active = active
	q.UpdatedAt = time.Now().UTC()

	if err := s.Store.Questions().UpdateQuestion(ctx, q); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (s *QuizService) DeleteQuestion(ctx context.Context, questionID, userID string) error {
	q, err := s.Store.Questions().GetQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	ch, err := s.Store.Chapters().GetChapterByID(ctx, q.ChapterID)
	if err != nil {
		return err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return err
	}
	return s.Store.Questions().DeleteQuestion(ctx, questionID)
}

func validateQuestion(
	prompt string,
	choices []string,
	correctIndex int,
	difficulty domain.Difficulty,
) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrInvalidInput
	}
	if len(choices) != domain.QuestionChoices {
		return ErrInvalidInput
	}
	for _, c := range choices {
		if strings.TrimSpace(c) == "" {
			return ErrInvalidInput
		}
	}
	if correctIndex < 0 || correctIndex >= domain.QuestionChoices {
		return ErrInvalidInput
	}
	if !difficulty.Valid() {
		return ErrInvalidInput
	}
	return nil
}

// --- quizzes ---

func (s *QuizService) CreateQuiz(
	ctx context.Context,
	chapterID, userID, title string,
	questionCount int,
	published bool,
) (domain.Quiz, error) {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return domain.Quiz{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" || questionCount < 1 {
		return domain.Quiz{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	q := domain.Quiz{
		ID:            idx.New().String(),
		ChapterID:     chapterID,
		Title:         title,
		QuestionCount: questionCount,
		Published:     published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Quizzes().CreateQuiz(ctx, q); err != nil {
		return domain.Quiz{}, err
	}
	return q, nil
}

func (s *QuizService) ListQuizzes(
	ctx context.Context,
	chapterID, userID string,
) ([]domain.Quiz, error) {
	ch, err := s.Store.Chapters().GetChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	m, err := s.Store.Memberships().GetMembership(ctx, ch.CourseID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	quizzes, err := s.Store.Quizzes().ListQuizzesByChapter(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if m.Role.Staff() {
		return quizzes, nil
	}

	// Students only see published quizzes.
	published := quizzes[:0]
	for _, q := range quizzes {
		if q.Published {
			published = append(published, q)
		}
	}
	return published, nil
}

// ListAvailableQuizzes returns every published quiz across the user's
// courses, for the student dashboard.
func (s *QuizService) ListAvailableQuizzes(
	ctx context.Context,
	userID string,
) ([]domain.Quiz, error) {
	return s.Store.Quizzes().ListPublishedQuizzesForUser(ctx, userID)
}

func (s *QuizService) UpdateQuiz(
	ctx context.Context,
	quizID, userID, title string,
	questionCount int,
	published bool,
) (domain.Quiz, error) {
	q, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return domain.Quiz{}, err
	}
	ch, err := s.Store.Chapters().GetChapterByID(ctx, q.ChapterID)
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return domain.Quiz{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" || questionCount < 1 {
		return domain.Quiz{}, ErrInvalidInput
	}

	q.Title = title
	q.QuestionCount = questionCount
	q.Published = published
	q.UpdatedAt = time.Now().UTC()

	if err := s.Store.Quizzes().UpdateQuiz(ctx, q); err != nil {
		return domain.Quiz{}, err
	}
	return q, nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, quizID, userID string) error {
	q, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return err
	}
	ch, err := s.Store.Chapters().GetChapterByID(ctx, q.ChapterID)
	if err != nil {
		return err
	}
	if err := s.requireCourseStaff(ctx, ch.CourseID, userID); err != nil {
		return err
	}
	return s.Store.Quizzes().DeleteQuiz(ctx, quizID)
}

func (s *QuizService) requireCourseMember(ctx context.Context, courseID, userID string) error {
	_, err := s.Store.Memberships().GetMembership(ctx, courseID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrForbidden
	}
	return err
}

func (s *QuizService) requireCourseStaff(ctx context.Context, courseID, userID string) error {
	m, err := s.Store.Memberships().GetMembership(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !m.Role.Staff() {
		return ErrForbidden
	}
	return nil
}
