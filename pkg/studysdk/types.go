package studysdk

import "time"

// Request and response bodies shared by the server handlers and the SDK
// client.

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleExchangeRequest struct {
	Code string `json:"code"`
}

// TokenResponse carries the access token. The refresh token travels in an
// HTTP-only cookie, never in the body.
type TokenResponse struct {
	AccessToken string        `json:"access"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int           `json:"expires_in"`
	User        *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CourseCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CourseUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CourseStatusRequest struct {
	Status string `json:"status"`
}

type JoinCodeRequest struct {
	Enabled bool `json:"enabled"`
}

type CourseResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Status      string `json:"status"`

	// Join code fields are only populated for course staff.
	JoinCode        string `json:"join_code,omitempty"`
	JoinCodeEnabled *bool  `json:"join_code_enabled,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type JoinRequest struct {
	Code string `json:"code"`
}

type MemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type MemberResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}

type ChapterRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type ChapterResponse struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type QuestionRequest struct {
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   string   `json:"difficulty"`
	Active       *bool    `json:"active,omitempty"`
}

// QuestionResponse is the staff view, answer key included.
type QuestionResponse struct {
	ID           string   `json:"id"`
	ChapterID    string   `json:"chapter_id"`
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Difficulty   string   `json:"difficulty"`
	Active       bool     `json:"active"`
}

type QuizRequest struct {
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	Published     *bool  `json:"published,omitempty"`
}

type QuizResponse struct {
	ID            string `json:"id"`
	ChapterID     string `json:"chapter_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	Published     bool   `json:"published"`
}

// AttemptQuestion is the student view of a question: no answer key.
type AttemptQuestion struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Choices    []string `json:"choices"`
	Difficulty string   `json:"difficulty"`
}

type AttemptResponse struct {
	ID                string           `json:"id"`
	QuizID            string           `json:"quiz_id"`
	Status            string           `json:"status"`
	CurrentDifficulty string           `json:"current_difficulty"`
	NumAnswered       int              `json:"num_answered"`
	NumCorrect        int              `json:"num_correct"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	Question          *AttemptQuestion `json:"question,omitempty"`
}

type AnswerRequest struct {
	QuestionID    string `json:"question_id"`
	SelectedIndex int    `json:"selected_index"`
}

type AnswerResponse struct {
	Correct      bool             `json:"correct"`
	CorrectIndex int              `json:"correct_index"`
	Attempt      AttemptResponse  `json:"attempt"`
	NextQuestion *AttemptQuestion `json:"next_question,omitempty"`
}

// ErrorResponse is the platform's JSON error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
