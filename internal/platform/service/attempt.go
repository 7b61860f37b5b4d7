package service

import (
	"context"
	"errors"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/idx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

var (
	ErrAttemptCompleted   = errors.New("attempt_completed")
	ErrQuestionInvalid    = errors.New("question_invalid")
	ErrNotCurrentQuestion = errors.New("not_current_question")
	ErrDuplicateAnswer    = errors.New("duplicate_answer")
	ErrQuestionBankEmpty  = errors.New("question_bank_empty")
	ErrInvalidChoice      = errors.New("invalid_choice")
)

// AttemptService runs adaptive quiz attempts. Difficulty starts at MEDIUM,
// steps up on a correct answer and down on a wrong one, clamped at the
// ends. The next question is drawn from the target difficulty, falling
// back to the remaining difficulties nearest first.
type AttemptService struct {
	Store store.Store
}

// AttemptView is an attempt plus the current question stripped of its
// answer key.
type AttemptView struct {
	Attempt  domain.Attempt
	Question *QuestionView
}

// QuestionView is what a student taking a quiz is allowed to see.
type QuestionView struct {
	ID         string
	Prompt     string
	Choices    []string
	Difficulty domain.Difficulty
}

func publicQuestion(q domain.Question) *QuestionView {
	return &QuestionView{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Choices:    q.Choices,
		Difficulty: q.Difficulty,
	}
}

// AnswerResult reports the grading outcome and where the attempt went
// next.
type AnswerResult struct {
	Correct      bool
	CorrectIndex int
	Attempt      domain.Attempt
	NextQuestion *QuestionView
}

// StartAttempt opens (or resumes) the caller's attempt on a published
// quiz. An existing IN_PROGRESS attempt is returned as-is.
func (s *AttemptService) StartAttempt(
	ctx context.Context,
	quizID, userID string,
) (AttemptView, error) {
	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, quizID)
	if err != nil {
		return AttemptView{}, err
	}
	ch, err := s.Store.Chapters().GetChapterByID(ctx, quiz.ChapterID)
	if err != nil {
		return AttemptView{}, err
	}
	if _, err := s.Store.Memberships().GetMembership(ctx, ch.CourseID, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AttemptView{}, ErrForbidden
		}
		return AttemptView{}, err
	}
	if !quiz.Published {
		return AttemptView{}, ErrQuizUnpublished
	}

	// Resume before starting fresh: one open attempt per (quiz, user).
	if a, err := s.Store.Attempts().GetInProgressAttempt(ctx, quizID, userID); err == nil {
		return s.view(ctx, a)
	} else if !errors.Is(err, store.ErrNotFound) {
		return AttemptView{}, err
	}

	now := time.Now().UTC()
	a := domain.Attempt{
		ID:                idx.New().String(),
		QuizID:            quizID,
		UserID:            userID,
		Status:            domain.AttemptStatusInProgress,
		CurrentDifficulty: domain.DifficultyMedium,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	first, err := nextQuestion(ctx, s.Store.Questions(), ch.ID, a.ID, a.CurrentDifficulty)
	if err != nil {
		return AttemptView{}, err
	}
	if first == nil {
		return AttemptView{}, ErrQuestionBankEmpty
	}
	a.CurrentQuestionID = &first.ID

	if err := s.Store.Attempts().CreateAttempt(ctx, a); err != nil {
		return AttemptView{}, err
	}

	slogx.FromContext(ctx).Info("attempt started",
		"attempt_id", a.ID, "quiz_id", quizID, "user_id", userID)
	return AttemptView{Attempt: a, Question: publicQuestion(*first)}, nil
}

// GetAttempt returns the caller's attempt with its pending question.
func (s *AttemptService) GetAttempt(
	ctx context.Context,
	attemptID, userID string,
) (AttemptView, error) {
	a, err := s.Store.Attempts().GetAttemptByID(ctx, attemptID)
	if err != nil {
		return AttemptView{}, err
	}
	if a.UserID != userID {
		return AttemptView{}, ErrForbidden
	}
	return s.view(ctx, a)
}

// SubmitAnswer grades the response to the attempt's current question,
// adjusts difficulty, and either advances to the next question or
// completes the attempt. Grading, recording and progress all commit in
// one transaction.
func (s *AttemptService) SubmitAnswer(
	ctx context.Context,
	attemptID, userID, questionID string,
	selectedIndex int,
) (AnswerResult, error) {
	a, err := s.Store.Attempts().GetAttemptByID(ctx, attemptID)
	if err != nil {
		return AnswerResult{}, err
	}
	if a.UserID != userID {
		return AnswerResult{}, ErrForbidden
	}
	if a.Status == domain.AttemptStatusCompleted {
		return AnswerResult{}, ErrAttemptCompleted
	}
	if a.CurrentQuestionID == nil || *a.CurrentQuestionID != questionID {
		return AnswerResult{}, ErrNotCurrentQuestion
	}
	if selectedIndex < 0 || selectedIndex >= domain.QuestionChoices {
		return AnswerResult{}, ErrInvalidChoice
	}

	q, err := s.Store.Questions().GetQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AnswerResult{}, ErrQuestionInvalid
		}
		return AnswerResult{}, err
	}
	// A question deactivated mid-attempt is no longer gradable.
	if !q.Active {
		return AnswerResult{}, ErrQuestionInvalid
	}

	quiz, err := s.Store.Quizzes().GetQuizByID(ctx, a.QuizID)
	if err != nil {
		return AnswerResult{}, err
	}

	now := time.Now().UTC()
	correct := selectedIndex == q.CorrectIndex

	a.NumAnswered++
	if correct {
		a.NumCorrect++
		a.CurrentDifficulty = a.CurrentDifficulty.StepUp()
	} else {
		a.CurrentDifficulty = a.CurrentDifficulty.StepDown()
	}

	ans := domain.Answer{
		ID:            idx.New().String(),
		AttemptID:     a.ID,
		QuestionID:    q.ID,
		SelectedIndex: selectedIndex,
		Correct:       correct,
		CreatedAt:     now,
	}

	// The answer has to land before the next question is drawn, otherwise
	// the selection could hand back the question just graded. Doing both
	// in one transaction also keeps the counters consistent.
	var next *domain.Question
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Attempts().CreateAnswer(ctx, ans); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateAnswer
			}
			return err
		}

		if a.NumAnswered >= quiz.QuestionCount {
			completeAttempt(&a, now)
		} else {
			next, err = nextQuestion(ctx, tx.Questions(), q.ChapterID, a.ID, a.CurrentDifficulty)
			if err != nil {
				return err
			}
			if next == nil {
				// Bank exhausted before reaching the target count.
				completeAttempt(&a, now)
			} else {
				a.CurrentQuestionID = &next.ID
			}
		}
		a.UpdatedAt = now

		return tx.Attempts().UpdateAttemptProgress(ctx, a)
	})
	if err != nil {
		return AnswerResult{}, err
	}

	res := AnswerResult{Correct: correct, CorrectIndex: q.CorrectIndex, Attempt: a}
	if next != nil {
		res.NextQuestion = publicQuestion(*next)
	}
	return res, nil
}

func completeAttempt(a *domain.Attempt, now time.Time) {
	a.Status = domain.AttemptStatusCompleted
	a.CurrentQuestionID = nil
	at := now
	a.CompletedAt = &at
}

func (s *AttemptService) view(ctx context.Context, a domain.Attempt) (AttemptView, error) {
	v := AttemptView{Attempt: a}
	if a.CurrentQuestionID != nil {
		q, err := s.Store.Questions().GetQuestionByID(ctx, *a.CurrentQuestionID)
		if err != nil {
			return AttemptView{}, err
		}
		v.Question = publicQuestion(q)
	}
	return v, nil
}
