package domain

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// StepUp moves one level harder, clamped at HARD.
func (d Difficulty) StepUp() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyHard
	}
}

// StepDown moves one level easier, clamped at EASY.
func (d Difficulty) StepDown() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	default:
		return DifficultyEasy
	}
}

// Adjacent returns the neighbouring difficulties, nearest first.
func (d Difficulty) Adjacent() []Difficulty {
	switch d {
	case DifficultyEasy:
		return []Difficulty{DifficultyMedium, DifficultyHard}
	case DifficultyHard:
		return []Difficulty{DifficultyMedium, DifficultyEasy}
	default:
		return []Difficulty{DifficultyEasy, DifficultyHard}
	}
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Chapter groups questions within a course.
type Chapter struct {
	ID        string
	CourseID  string
	Title     string
	Position  int // ordering within the course
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuestionChoices is the fixed number of answer choices per question.
const QuestionChoices = 4

type Question struct {
	ID           string
	ChapterID    string
	Prompt       string
	Choices      []string // always QuestionChoices entries, stored as JSON
	CorrectIndex int      // 0..QuestionChoices-1
	Difficulty   Difficulty
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Quiz struct {
	ID            string
	ChapterID     string
	Title         string
	QuestionCount int // target number of questions per attempt
	Published     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
