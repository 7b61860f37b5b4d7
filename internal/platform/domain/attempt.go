package domain

import "time"

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "IN_PROGRESS"
	AttemptStatusCompleted  AttemptStatus = "COMPLETED"
)

// Attempt is one user's run through a quiz. A user has at most one
// IN_PROGRESS attempt per quiz.
type Attempt struct {
	ID                string
	QuizID            string
	UserID            string
	Status            AttemptStatus
	CurrentDifficulty Difficulty
	CurrentQuestionID *string // nil once the attempt completes
	NumAnswered       int
	NumCorrect        int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
}

// Answer records one graded response. (attempt, question) is unique.
type Answer struct {
	ID            string
	AttemptID     string
	QuestionID    string
	SelectedIndex int
	Correct       bool
	CreatedAt     time.Time
}
