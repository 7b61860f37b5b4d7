package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

type coursesRepo struct {
	db dbtx
}

const courseColumns = `id, owner_id, title, slug, description, status,
	join_code, join_code_enabled, created_at, updated_at`

func scanCourse(row *sql.Row) (domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Title, &c.Slug, &c.Description, &c.Status,
		&c.JoinCode, &c.JoinCodeEnabled, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Course{}, mapNotFound(err)
	}
	return c, nil
}

func (r *coursesRepo) CreateCourse(ctx context.Context, c domain.Course) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (id, owner_id, title, slug, description, status,
			join_code, join_code_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.OwnerID, c.Title, c.Slug, c.Description, c.Status,
		c.JoinCode, c.JoinCodeEnabled, c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *coursesRepo) GetCourseByID(ctx context.Context, id string) (domain.Course, error) {
	return scanCourse(r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id))
}

func (r *coursesRepo) GetCourseByJoinCode(ctx context.Context, code string) (domain.Course, error) {
	return scanCourse(r.db.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses
		WHERE join_code = ? AND join_code_enabled = 1`, code))
}

func (r *coursesRepo) ListCoursesForUser(ctx context.Context, userID string) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.owner_id, c.title, c.slug, c.description, c.status,
			c.join_code, c.join_code_enabled, c.created_at, c.updated_at
		FROM courses c
		JOIN course_memberships m ON m.course_id = c.id
		WHERE m.user_id = ?
		ORDER BY c.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.Title, &c.Slug, &c.Description, &c.Status,
			&c.JoinCode, &c.JoinCodeEnabled, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *coursesRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM courses WHERE slug = ?`, slug).Scan(&n)
	return n > 0, err
}

func (r *coursesRepo) UpdateCourse(ctx context.Context, c domain.Course) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE courses SET title = ?, slug = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Slug, c.Description, time.Now().UTC(), c.ID,
	)
	return mapConstraint(err)
}

func (r *coursesRepo) UpdateCourseStatus(
	ctx context.Context,
	courseID string,
	status domain.CourseStatus,
) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE courses SET status = ?, updated_at = ?
		WHERE id = ?`,
		status, time.Now().UTC(), courseID,
	)
	return err
}

func (r *coursesRepo) UpdateJoinCode(ctx context.Context, courseID, code string, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE courses SET join_code = ?, join_code_enabled = ?, updated_at = ?
		WHERE id = ?`,
		code, enabled, time.Now().UTC(), courseID,
	)
	return mapConstraint(err)
}

func (r *coursesRepo) DeleteCourse(ctx context.Context, courseID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, courseID)
	return err
}
