package sqlite

import (
	"context"
	"database/sql"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
)

type membershipsRepo struct {
	db dbtx
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO course_memberships (id, course_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.CourseID, m.UserID, m.Role, m.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembership(
	ctx context.Context,
	courseID, userID string,
) (domain.Membership, error) {
	var m domain.Membership
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_id, user_id, role, created_at
		FROM course_memberships WHERE course_id = ? AND user_id = ?`,
		courseID, userID,
	).Scan(&m.ID, &m.CourseID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListCourseMembers(
	ctx context.Context,
	courseID string,
) ([]store.CourseMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.course_id, m.user_id, m.role, m.created_at,
			u.id, u.email, u.first_name, u.last_name, u.password_hash,
			u.role, u.google_sub, u.active, u.created_at, u.updated_at
		FROM course_memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.course_id = ?
		ORDER BY CASE m.role WHEN 'OWNER' THEN 0 ELSE 1 END, m.created_at`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.CourseMember
	for rows.Next() {
		var cm store.CourseMember
		var googleSub sql.NullString
		if err := rows.Scan(
			&cm.Membership.ID, &cm.Membership.CourseID, &cm.Membership.UserID,
			&cm.Membership.Role, &cm.Membership.CreatedAt,
			&cm.User.ID, &cm.User.Email, &cm.User.FirstName, &cm.User.LastName,
			&cm.User.PasswordHash, &cm.User.Role, &googleSub, &cm.User.Active,
			&cm.User.CreatedAt, &cm.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		cm.User.GoogleSub = mapNullStringPtr(googleSub)
		out = append(out, cm)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, courseID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM course_memberships WHERE course_id = ? AND user_id = ?`,
		courseID, userID,
	)
	return err
}
