package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

type quizzesRepo struct {
	db dbtx
}

func (r *quizzesRepo) CreateQuiz(ctx context.Context, q domain.Quiz) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quizzes (id, chapter_id, title, question_count, published,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.ChapterID, q.Title, q.QuestionCount, q.Published,
		q.CreatedAt, q.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *quizzesRepo) GetQuizByID(ctx context.Context, id string) (domain.Quiz, error) {
	var q domain.Quiz
	err := r.db.QueryRowContext(ctx, `
		SELECT id, chapter_id, title, question_count, published, created_at, updated_at
		FROM quizzes WHERE id = ?`, id,
	).Scan(
		&q.ID, &q.ChapterID, &q.Title, &q.QuestionCount, &q.Published,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return domain.Quiz{}, mapNotFound(err)
	}
	return q, nil
}

func (r *quizzesRepo) ListQuizzesByChapter(
	ctx context.Context,
	chapterID string,
) ([]domain.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chapter_id, title, question_count, published, created_at, updated_at
		FROM quizzes WHERE chapter_id = ?
		ORDER BY created_at`, chapterID)
	if err != nil {
		return nil, err
	}
	return collectQuizzes(rows)
}

func (r *quizzesRepo) ListPublishedQuizzesForUser(
	ctx context.Context,
	userID string,
) ([]domain.Quiz, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT q.id, q.chapter_id, q.title, q.question_count, q.published,
			q.created_at, q.updated_at
		FROM quizzes q
		JOIN chapters ch ON ch.id = q.chapter_id
		JOIN course_memberships m ON m.course_id = ch.course_id
		WHERE m.user_id = ? AND q.published = 1
		ORDER BY q.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectQuizzes(rows)
}

func collectQuizzes(rows *sql.Rows) ([]domain.Quiz, error) {
	defer rows.Close()

	var out []domain.Quiz
	for rows.Next() {
		var q domain.Quiz
		if err := rows.Scan(
			&q.ID, &q.ChapterID, &q.Title, &q.QuestionCount, &q.Published,
			&q.CreatedAt, &q.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *quizzesRepo) UpdateQuiz(ctx context.Context, q domain.Quiz) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE quizzes SET title = ?, question_count = ?, published = ?, updated_at = ?
		WHERE id = ?`,
		q.Title, q.QuestionCount, q.Published, time.Now().UTC(), q.ID,
	)
	return err
}

func (r *quizzesRepo) DeleteQuiz(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	return err
}
