package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

type attemptsRepo struct {
	db dbtx
}

const attemptColumns = `id, quiz_id, user_id, status, current_difficulty,
	current_question_id, num_answered, num_correct, created_at, updated_at,
	completed_at`

func scanAttempt(row *sql.Row) (domain.Attempt, error) {
	var a domain.Attempt
	var currentQuestion sql.NullString
	var completedAt sql.NullTime
	err := row.Scan(
		&a.ID, &a.QuizID, &a.UserID, &a.Status, &a.CurrentDifficulty,
		&currentQuestion, &a.NumAnswered, &a.NumCorrect,
		&a.CreatedAt, &a.UpdatedAt, &completedAt,
	)
	if err != nil {
		return domain.Attempt{}, mapNotFound(err)
	}
	a.CurrentQuestionID = mapNullStringPtr(currentQuestion)
	a.CompletedAt = mapNullTimePtr(completedAt)
	return a, nil
}

func (r *attemptsRepo) CreateAttempt(ctx context.Context, a domain.Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quiz_attempts (id, quiz_id, user_id, status,
			current_difficulty, current_question_id, num_answered, num_correct,
			created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuizID, a.UserID, a.Status, a.CurrentDifficulty,
		mapOptionalString(a.CurrentQuestionID), a.NumAnswered, a.NumCorrect,
		a.CreatedAt, a.UpdatedAt, mapOptionalTime(a.CompletedAt),
	)
	return mapConstraint(err)
}

func (r *attemptsRepo) GetAttemptByID(ctx context.Context, id string) (domain.Attempt, error) {
	return scanAttempt(r.db.QueryRowContext(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE id = ?`, id))
}

func (r *attemptsRepo) GetInProgressAttempt(
	ctx context.Context,
	quizID, userID string,
) (domain.Attempt, error) {
	return scanAttempt(r.db.QueryRowContext(ctx, `
		SELECT `+attemptColumns+` FROM quiz_attempts
		WHERE quiz_id = ? AND user_id = ? AND status = 'IN_PROGRESS'`,
		quizID, userID))
}

func (r *attemptsRepo) UpdateAttemptProgress(ctx context.Context, a domain.Attempt) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quiz_attempts SET status = ?, current_difficulty = ?,
			current_question_id = ?, num_answered = ?, num_correct = ?,
			updated_at = ?, completed_at = ?
		WHERE id = ?`,
		a.Status, a.CurrentDifficulty, mapOptionalString(a.CurrentQuestionID),
		a.NumAnswered, a.NumCorrect, time.Now().UTC(),
		mapOptionalTime(a.CompletedAt), a.ID,
	)
	return err
}

func (r *attemptsRepo) CreateAnswer(ctx context.Context, ans domain.Answer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attempt_answers (id, attempt_id, question_id,
			selected_index, correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ans.ID, ans.AttemptID, ans.QuestionID, ans.SelectedIndex,
		ans.Correct, ans.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *attemptsRepo) ListAnswersByAttempt(
	ctx context.Context,
	attemptID string,
) ([]domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, attempt_id, question_id, selected_index, correct, created_at
		FROM attempt_answers WHERE attempt_id = ?
		ORDER BY created_at`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(
			&a.ID, &a.AttemptID, &a.QuestionID, &a.SelectedIndex,
			&a.Correct, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
