package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/cryptox"
	"github.com/studyhall/studyhall/pkg/idx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrCourseArchived  = errors.New("course_archived")
	ErrJoinCodeInvalid = errors.New("join_code_invalid")
	ErrOwnerImmutable  = errors.New("owner_membership_immutable")
)

// CourseService owns the course lifecycle, memberships and join-code
// enrollment.
type CourseService struct {
	Store store.Store
}

// CreateCourse creates a DRAFT course owned by the caller. Only
// instructors and admins may create courses. The owner membership and a
// fresh join code are created in the same transaction.
func (s *CourseService) CreateCourse(
	ctx context.Context,
	ownerID, title, description string,
) (domain.Course, error) {
	u, err := s.Store.Users().GetUserByID(ctx, ownerID)
	if err != nil {
		return domain.Course{}, err
	}
	if u.Role != domain.UserRoleInstructor && u.Role != domain.UserRoleAdmin {
		return domain.Course{}, ErrForbidden
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Course{}, ErrInvalidInput
	}

	slug, err := s.uniqueSlug(ctx, title)
	if err != nil {
		return domain.Course{}, err
	}
	code, err := cryptox.GenerateJoinCode()
	if err != nil {
		return domain.Course{}, err
	}

	now := time.Now().UTC()
	c := domain.Course{
		ID:              idx.New().String(),
		OwnerID:         ownerID,
		Title:           title,
		Slug:            slug,
		Description:     strings.TrimSpace(description),
		Status:          domain.CourseStatusDraft,
		JoinCode:        code,
		JoinCodeEnabled: true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Courses().CreateCourse(ctx, c); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			ID:        idx.New().String(),
			CourseID:  c.ID,
			UserID:    ownerID,
			Role:      domain.MembershipRoleOwner,
			CreatedAt: now,
		})
	})
	if err != nil {
		return domain.Course{}, err
	}

	slogx.FromContext(ctx).Info("course created",
		"course_id", c.ID, "slug", c.Slug, "owner_id", ownerID)
	return c, nil
}

// ListMyCourses returns the courses the user is a member of.
func (s *CourseService) ListMyCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	return s.Store.Courses().ListCoursesForUser(ctx, userID)
}

// GetCourse returns the course if the caller is a member.
func (s *CourseService) GetCourse(
	ctx context.Context,
	courseID, userID string,
) (domain.Course, error) {
	if _, err := s.requireMember(ctx, courseID, userID); err != nil {
		return domain.Course{}, err
	}
	return s.Store.Courses().GetCourseByID(ctx, courseID)
}

// UpdateCourse changes title and description. Staff only; archived
// courses are read-only. A title change regenerates the slug.
func (s *CourseService) UpdateCourse(
	ctx context.Context,
	courseID, userID, title, description string,
) (domain.Course, error) {
	if _, err := s.requireStaff(ctx, courseID, userID); err != nil {
		return domain.Course{}, err
	}

	c, err := s.Store.Courses().GetCourseByID(ctx, courseID)
	if err != nil {
		return domain.Course{}, err
	}
	if c.Archived() {
		return domain.Course{}, ErrCourseArchived
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Course{}, ErrInvalidInput
	}
	if title != c.Title {
		slug, err := s.uniqueSlug(ctx, title)
		if err != nil {
			return domain.Course{}, err
		}
		c.Slug = slug
	}
	c.Title = title
	c.Description = strings.TrimSpace(description)
	c.UpdatedAt = time.Now().UTC()

	if err := s.Store.Courses().UpdateCourse(ctx, c); err != nil {
		return domain.Course{}, err
	}
	return c, nil
}

// SetStatus transitions the course lifecycle (activate, archive,
// back to draft). Owner only.
func (s *CourseService) SetStatus(
	ctx context.Context,
	courseID, userID string,
	status domain.CourseStatus,
) error {
	m, err := s.requireStaff(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if m.Role != domain.MembershipRoleOwner {
		return ErrForbidden
	}

	switch status {
	case domain.CourseStatusDraft, domain.CourseStatusActive, domain.CourseStatusArchived:
	default:
		return ErrInvalidInput
	}
	return s.Store.Courses().UpdateCourseStatus(ctx, courseID, status)
}

// SetJoinCodeEnabled toggles whether the join code accepts enrollments.
func (s *CourseService) SetJoinCodeEnabled(
	ctx context.Context,
	courseID, userID string,
	enabled bool,
) (domain.Course, error) {
	if _, err := s.requireStaff(ctx, courseID, userID); err != nil {
		return domain.Course{}, err
	}
	c, err := s.Store.Courses().GetCourseByID(ctx, courseID)
	if err != nil {
		return domain.Course{}, err
	}
	if err := s.Store.Courses().UpdateJoinCode(ctx, courseID, c.JoinCode, enabled); err != nil {
		return domain.Course{}, err
	}
	c.JoinCodeEnabled = enabled
	return c, nil
}

// RotateJoinCode replaces the join code, invalidating the previous one.
func (s *CourseService) RotateJoinCode(
	ctx context.Context,
	courseID, userID string,
) (domain.Course, error) {
	if _, err := s.requireStaff(ctx, courseID, userID); err != nil {
		return domain.Course{}, err
	}
	c, err := s.Store.Courses().GetCourseByID(ctx, courseID)
	if err != nil {
		return domain.Course{}, err
	}

	code, err := cryptox.GenerateJoinCode()
	if err != nil {
		return domain.Course{}, err
	}
	if err := s.Store.Courses().UpdateJoinCode(ctx, courseID, code, c.JoinCodeEnabled); err != nil {
		return domain.Course{}, err
	}
	c.JoinCode = code
	return c, nil
}

// JoinByCode enrolls the caller as a STUDENT member of the course whose
// enabled join code matches. Joining a course you already belong to is a
// no-op. Unknown and disabled codes are indistinguishable to the caller.
func (s *CourseService) JoinByCode(
	ctx context.Context,
	userID, code string,
) (domain.Course, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Course{}, ErrJoinCodeInvalid
	}

	c, err := s.Store.Courses().GetCourseByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Course{}, ErrJoinCodeInvalid
		}
		return domain.Course{}, err
	}
	if c.Archived() {
		return domain.Course{}, ErrCourseArchived
	}

	err = s.Store.Memberships().CreateMembership(ctx, domain.Membership{
		ID:        idx.New().String(),
		CourseID:  c.ID,
		UserID:    userID,
		Role:      domain.MembershipRoleStudent,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, store.ErrAlreadyExists) {
		return domain.Course{}, err
	}
	return c, nil
}

// ListMembers returns the course roster. Members only.
func (s *CourseService) ListMembers(
	ctx context.Context,
	courseID, userID string,
) ([]store.CourseMember, error) {
	if _, err := s.requireMember(ctx, courseID, userID); err != nil {
		return nil, err
	}
	return s.Store.Memberships().ListCourseMembers(ctx, courseID)
}

// AddMember enrolls a user directly with the given role. Owner and
// instructors only; nobody can hand out OWNER.
func (s *CourseService) AddMember(
	ctx context.Context,
	courseID, callerID, userID string,
	role domain.MembershipRole,
) error {
	m, err := s.requireStaff(ctx, courseID, callerID)
	if err != nil {
		return err
	}
	if m.Role == domain.MembershipRoleTA {
		return ErrForbidden
	}
	if role == domain.MembershipRoleOwner {
		return ErrOwnerImmutable
	}
	switch role {
	case domain.MembershipRoleInstructor, domain.MembershipRoleTA, domain.MembershipRoleStudent:
	default:
		return ErrInvalidInput
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.Store.Memberships().CreateMembership(ctx, domain.Membership{
		ID:        idx.New().String(),
		CourseID:  courseID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
}

// RemoveMember unenrolls a user. Owner and instructors only; the owner
// membership cannot be removed. Students may remove themselves.
func (s *CourseService) RemoveMember(
	ctx context.Context,
	courseID, callerID, userID string,
) error {
	target, err := s.Store.Memberships().GetMembership(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if target.Role == domain.MembershipRoleOwner {
		return ErrOwnerImmutable
	}

	if callerID != userID {
		m, err := s.requireStaff(ctx, courseID, callerID)
		if err != nil {
			return err
		}
		if m.Role == domain.MembershipRoleTA {
			return ErrForbidden
		}
	}
	return s.Store.Memberships().DeleteMembership(ctx, courseID, userID)
}

// DeleteCourse permanently removes the course and, through the schema's
// cascades, everything under it. Owner only.
func (s *CourseService) DeleteCourse(ctx context.Context, courseID, userID string) error {
	m, err := s.requireStaff(ctx, courseID, userID)
	if err != nil {
		return err
	}
	if m.Role != domain.MembershipRoleOwner {
		return ErrForbidden
	}
	return s.Store.Courses().DeleteCourse(ctx, courseID)
}

// Membership returns the caller's membership in the course, or
// ErrForbidden for non-members.
func (s *CourseService) Membership(
	ctx context.Context,
	courseID, userID string,
) (domain.Membership, error) {
	return s.requireMember(ctx, courseID, userID)
}

// requireMember returns the caller's membership or ErrForbidden.
func (s *CourseService) requireMember(
	ctx context.Context,
	courseID, userID string,
) (domain.Membership, error) {
	m, err := s.Store.Memberships().GetMembership(ctx, courseID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrForbidden
		}
		return domain.Membership{}, err
	}
	return m, nil
}

// requireStaff returns the caller's membership if it can manage content.
func (s *CourseService) requireStaff(
	ctx context.Context,
	courseID, userID string,
) (domain.Membership, error) {
	m, err := s.requireMember(ctx, courseID, userID)
	if err != nil {
		return domain.Membership{}, err
	}
	if !m.Role.Staff() {
		return domain.Membership{}, ErrForbidden
	}
	return m, nil
}

// uniqueSlug slugifies the title and suffixes -2, -3, ... on collision.
func (s *CourseService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "course"
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.Store.Courses().SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// slugify lowercases and collapses anything non-alphanumeric to single
// hyphens.
func slugify(s string) string {
	var b strings.Builder
	prevHyphen := true // trims leading hyphens
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		case !prevHyphen:
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
