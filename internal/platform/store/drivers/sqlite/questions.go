package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

type questionsRepo struct {
	db dbtx
}

func encodeChoices(choices []string) (string, error) {
	b, err := json.Marshal(choices)
	if err != nil {
		return "", fmt.Errorf("encode choices: %w", err)
	}
	return string(b), nil
}

func decodeChoices(raw string) ([]string, error) {
	var choices []string
	if err := json.Unmarshal([]byte(raw), &choices); err != nil {
		return nil, fmt.Errorf("decode choices: %w", err)
	}
	return choices, nil
}

func scanQuestion(scan func(dest ...any) error) (domain.Question, error) {
	var q domain.Question
	var choices string
	err := scan(
		&q.ID, &q.ChapterID, &q.Prompt, &choices, &q.CorrectIndex,
		&q.Difficulty, &q.Active, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return domain.Question{}, mapNotFound(err)
	}
	q.Choices, err = decodeChoices(choices)
	if err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (r *questionsRepo) CreateQuestion(ctx context.Context, q domain.Question) error {
	choices, err := encodeChoices(q.Choices)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO questions (id, chapter_id, prompt, choices, correct_index,
			difficulty, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ChapterID, q.Prompt, choices, q.CorrectIndex,
		q.Difficulty, q.Active, q.CreatedAt, q.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *questionsRepo) GetQuestionByID(ctx context.Context, id string) (domain.Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chapter_id, prompt, choices, correct_index, difficulty,
			active, created_at, updated_at
		FROM questions WHERE id = ?`, id)
	return scanQuestion(row.Scan)
}

func (r *questionsRepo) ListQuestionsByChapter(
	ctx context.Context,
	chapterID string,
) ([]domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chapter_id, prompt, choices, correct_index, difficulty,
			active, created_at, updated_at
		FROM questions WHERE chapter_id = ?
		ORDER BY created_at`, chapterID)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func (r *questionsRepo) ListUnansweredQuestions(
	ctx context.Context,
	chapterID, attemptID string,
	difficulty domain.Difficulty,
) ([]domain.Question, error) {
	query := `
		SELECT id, chapter_id, prompt, choices, correct_index, difficulty,
			active, created_at, updated_at
		FROM questions
		WHERE chapter_id = ? AND active = 1
			AND id NOT IN (
				SELECT question_id FROM attempt_answers WHERE attempt_id = ?
			)`
	args := []any{chapterID, attemptID}
	if difficulty != "" {
		query += ` AND difficulty = ?`
		args = append(args, difficulty)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func collectQuestions(rows *sql.Rows) ([]domain.Question, error) {
	defer rows.Close()

	var out []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionsRepo) UpdateQuestion(ctx context.Context, q domain.Question) error {
	choices, err := encodeChoices(q.Choices)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE questions SET prompt = ?, choices = ?, correct_index = ?,
			difficulty = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		q.Prompt, choices, q.CorrectIndex, q.Difficulty, q.Active,
		time.Now().UTC(), q.ID,
	)
	return err
}

func (r *questionsRepo) DeleteQuestion(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	return err
}
