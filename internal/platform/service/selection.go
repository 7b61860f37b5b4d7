package service

import (
	"context"
	"math/rand/v2"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
)

// nextQuestion picks the attempt's next question from the chapter bank.
// Preference order: the target difficulty, then the remaining
// difficulties nearest first, so every unused active question is
// reachable. Within a pool the pick is uniform. Returns nil when the
// bank is exhausted.
func nextQuestion(
	ctx context.Context,
	questions store.Questions,
	chapterID, attemptID string,
	target domain.Difficulty,
) (*domain.Question, error) {
	for _, d := range append([]domain.Difficulty{target}, target.Adjacent()...) {
		pool, err := questions.ListUnansweredQuestions(ctx, chapterID, attemptID, d)
		if err != nil {
			return nil, err
		}
		if len(pool) > 0 {
			return pick(pool), nil
		}
	}
	return nil, nil
}

func pick(pool []domain.Question) *domain.Question {
	q := pool[rand.IntN(len(pool))]
	return &q
}
