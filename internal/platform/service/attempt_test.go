package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store/drivers/sqlite"
)

// attemptFixture wires a full course with a published quiz and records
// each question's answer key so tests can answer deliberately right or
// wrong.
type attemptFixture struct {
	st      *sqlite.Store
	svc     *AttemptService
	quizSvc *QuizService

	instructor domain.User
	student    domain.User
	quiz       domain.Quiz
	correct    map[string]int
}

func newAttemptFixture(
	t *testing.T,
	counts map[domain.Difficulty]int,
	questionCount int,
) *attemptFixture {
	t.Helper()
	ctx := context.Background()

	st := newTestStore(t)
	courseSvc := &CourseService{Store: st}
	quizSvc := &QuizService{Store: st}

	fx := &attemptFixture{
		st:         st,
		svc:        &AttemptService{Store: st},
		quizSvc:    quizSvc,
		instructor: seedUser(t, st, "teach@example.com", domain.UserRoleInstructor),
		student:    seedUser(t, st, "kid@example.com", domain.UserRoleStudent),
		correct:    make(map[string]int),
	}

	course, err := courseSvc.CreateCourse(ctx, fx.instructor.ID, "Test Course", "")
	require.NoError(t, err)
	require.NoError(t, courseSvc.SetStatus(ctx, course.ID, fx.instructor.ID,
		domain.CourseStatusActive))
	require.NoError(t, courseSvc.AddMember(ctx, course.ID, fx.instructor.ID,
		fx.student.ID, domain.MembershipRoleStudent))

	chapter, err := quizSvc.CreateChapter(ctx, course.ID, fx.instructor.ID, "Chapter 1", 1)
	require.NoError(t, err)

	for diff, n := range counts {
		for i := 0; i < n; i++ {
			correctIdx := i % domain.QuestionChoices
			q, err := quizSvc.CreateQuestion(ctx, chapter.ID, fx.instructor.ID,
				fmt.Sprintf("%s question %d", diff, i),
				[]string{"a", "b", "c", "d"}, correctIdx, diff)
			require.NoError(t, err)
			fx.correct[q.ID] = correctIdx
		}
	}

	quiz, err := quizSvc.CreateQuiz(ctx, chapter.ID, fx.instructor.ID, "Quiz",
		questionCount, false)
	require.NoError(t, err)
	fx.quiz, err = quizSvc.UpdateQuiz(ctx, quiz.ID, fx.instructor.ID, quiz.Title,
		questionCount, true)
	require.NoError(t, err)

	return fx
}

// answer submits a response to the attempt's current question, right or
// wrong on demand, and returns the result.
func (fx *attemptFixture) answer(
	t *testing.T,
	attemptID string,
	q *QuestionView,
	right bool,
) AnswerResult {
	t.Helper()

	idx := fx.correct[q.ID]
	if !right {
		idx = (idx + 1) % domain.QuestionChoices
	}

	res, err := fx.svc.SubmitAnswer(context.Background(), attemptID, fx.student.ID, q.ID, idx)
	require.NoError(t, err)
	require.Equal(t, right, res.Correct)
	return res
}

func TestStartAttempt(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(t, map[domain.Difficulty]int{
		domain.DifficultyEasy:   2,
		domain.DifficultyMedium: 2,
		domain.DifficultyHard:   2,
	}, 4)

	t.Run("unpublished quizzes cannot be started", func(t *testing.T) {
		draft, err := fx.quizSvc.CreateQuiz(ctx, fx.quiz.ChapterID, fx.instructor.ID,
			"Draft Quiz", 3, false)
		require.NoError(t, err)

		_, err = fx.svc.StartAttempt(ctx, draft.ID, fx.student.ID)
		require.ErrorIs(t, err, ErrQuizUnpublished)
	})

	t.Run("non-members are rejected", func(t *testing.T) {
		outsider := seedUser(t, fx.st, "out@example.com", domain.UserRoleStudent)
		_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, outsider.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("starts at MEDIUM with a medium question", func(t *testing.T) {
		view, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
		require.NoError(t, err)
		require.Equal(t, domain.AttemptStatusInProgress, view.Attempt.Status)
		require.Equal(t, domain.DifficultyMedium, view.Attempt.CurrentDifficulty)
		require.NotNil(t, view.Question)
		require.Equal(t, domain.DifficultyMedium, view.Question.Difficulty)
	})

	t.Run("starting again resumes the open attempt", func(t *testing.T) {
		first, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
		require.NoError(t, err)

		second, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
		require.NoError(t, err)
		require.Equal(t, first.Attempt.ID, second.Attempt.ID)
	})
}

func TestSubmitAnswerAdaptive(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(t, map[domain.Difficulty]int{
		domain.DifficultyEasy:   3,
		domain.DifficultyMedium: 1,
		domain.DifficultyHard:   3,
	}, 3)

	view, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DifficultyMedium, view.Question.Difficulty)

	// Correct at MEDIUM steps up; the bank has HARD questions, so the
	// next draw comes from there.
	res := fx.answer(t, view.Attempt.ID, view.Question, true)
	require.Equal(t, domain.DifficultyHard, res.Attempt.CurrentDifficulty)
	require.NotNil(t, res.NextQuestion)
	require.Equal(t, domain.DifficultyHard, res.NextQuestion.Difficulty)

	// Wrong at HARD steps down to MEDIUM. The only medium question is
	// used up, so the fallback goes to the nearest remaining pool: EASY.
	res = fx.answer(t, res.Attempt.ID, res.NextQuestion, false)
	require.Equal(t, domain.DifficultyMedium, res.Attempt.CurrentDifficulty)
	require.NotNil(t, res.NextQuestion)
	require.Equal(t, domain.DifficultyEasy, res.NextQuestion.Difficulty)

	// Third answer hits the question count and completes the attempt.
	res = fx.answer(t, res.Attempt.ID, res.NextQuestion, true)
	require.Equal(t, domain.AttemptStatusCompleted, res.Attempt.Status)
	require.Nil(t, res.NextQuestion)
	require.Nil(t, res.Attempt.CurrentQuestionID)
	require.NotNil(t, res.Attempt.CompletedAt)
	require.Equal(t, 3, res.Attempt.NumAnswered)
	require.Equal(t, 2, res.Attempt.NumCorrect)

	t.Run("completed attempts reject further answers", func(t *testing.T) {
		_, err := fx.svc.SubmitAnswer(ctx, res.Attempt.ID, fx.student.ID,
			view.Question.ID, 0)
		require.ErrorIs(t, err, ErrAttemptCompleted)
	})
}

func TestSubmitAnswerValidation(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(t, map[domain.Difficulty]int{
		domain.DifficultyMedium: 2,
	}, 2)

	view, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
	require.NoError(t, err)

	t.Run("only the current question is answerable", func(t *testing.T) {
		_, err := fx.svc.SubmitAnswer(ctx, view.Attempt.ID, fx.student.ID,
			"some-other-question", 0)
		require.ErrorIs(t, err, ErrNotCurrentQuestion)
	})

	t.Run("choice index must be in range", func(t *testing.T) {
		_, err := fx.svc.SubmitAnswer(ctx, view.Attempt.ID, fx.student.ID,
			view.Question.ID, domain.QuestionChoices)
		require.ErrorIs(t, err, ErrInvalidChoice)
	})

	t.Run("attempts are private to their owner", func(t *testing.T) {
		_, err := fx.svc.GetAttempt(ctx, view.Attempt.ID, fx.instructor.ID)
		require.ErrorIs(t, err, ErrForbidden)

		_, err = fx.svc.SubmitAnswer(ctx, view.Attempt.ID, fx.instructor.ID,
			view.Question.ID, 0)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner sees the pending question", func(t *testing.T) {
		got, err := fx.svc.GetAttempt(ctx, view.Attempt.ID, fx.student.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Question)
		require.Equal(t, view.Question.ID, got.Question.ID)
	})

	t.Run("questions deactivated mid-attempt are rejected", func(t *testing.T) {
		_, err := fx.quizSvc.UpdateQuestion(ctx, view.Question.ID, fx.instructor.ID,
			view.Question.Prompt, view.Question.Choices,
			fx.correct[view.Question.ID], view.Question.Difficulty, false)
		require.NoError(t, err)

		_, err = fx.svc.SubmitAnswer(ctx, view.Attempt.ID, fx.student.ID,
			view.Question.ID, fx.correct[view.Question.ID])
		require.ErrorIs(t, err, ErrQuestionInvalid)
	})
}

func TestAttemptCompletesWhenBankRunsOut(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(t, map[domain.Difficulty]int{
		domain.DifficultyMedium: 2,
	}, 5)

	view, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
	require.NoError(t, err)

	res := fx.answer(t, view.Attempt.ID, view.Question, true)
	require.Equal(t, domain.AttemptStatusInProgress, res.Attempt.Status)
	require.NotNil(t, res.NextQuestion)

	res = fx.answer(t, res.Attempt.ID, res.NextQuestion, true)
	require.Equal(t, domain.AttemptStatusCompleted, res.Attempt.Status)
	require.Equal(t, 2, res.Attempt.NumAnswered)
	require.Nil(t, res.NextQuestion)
}

func TestStartAttemptEmptyBank(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(t, nil, 3)

	_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, fx.student.ID)
	require.ErrorIs(t, err, ErrQuestionBankEmpty)
}
