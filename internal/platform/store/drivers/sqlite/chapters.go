package sqlite

import (
	"context"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

type chaptersRepo struct {
	db dbtx
}

func (r *chaptersRepo) CreateChapter(ctx context.Context, c domain.Chapter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chapters (id, course_id, title, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.CourseID, c.Title, c.Position, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *chaptersRepo) GetChapterByID(ctx context.Context, id string) (domain.Chapter, error) {
	var c domain.Chapter
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, title, position, created_at, updated_at
		FROM chapters WHERE id = ?`, id,
	).Scan(&c.ID, &c.CourseID, &c.Title, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Chapter{}, mapNotFound(err)
	}
	return c, nil
}

func (r *chaptersRepo) ListChaptersByCourse(
	ctx context.Context,
	courseID string,
) ([]domain.Chapter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_id, title, position, created_at, updated_at
		FROM chapters WHERE course_id = ?
		ORDER BY position, created_at`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Chapter
	for rows.Next() {
		var c domain.Chapter
		if err := rows.Scan(
			&c.ID, &c.CourseID, &c.Title, &c.Position, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *chaptersRepo) UpdateChapter(ctx context.Context, c domain.Chapter) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE chapters SET title = ?, position = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Position, time.Now().UTC(), c.ID,
	)
	return err
}

func (r *chaptersRepo) DeleteChapter(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = ?`, id)
	return err
}
