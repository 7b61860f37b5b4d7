package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	instructor := seedUser(t, st, "teach@example.com", domain.UserRoleInstructor)
	student := seedUser(t, st, "kid@example.com", domain.UserRoleStudent)

	t.Run("students cannot create courses", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, student.ID, "Nope", "")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("instructor creates draft with owner membership", func(t *testing.T) {
		c, err := svc.CreateCourse(ctx, instructor.ID, "Intro to Go!", "a course")
		require.NoError(t, err)
		require.Equal(t, domain.CourseStatusDraft, c.Status)
		require.Equal(t, "intro-to-go", c.Slug)
		require.Len(t, c.JoinCode, 8)
		require.True(t, c.JoinCodeEnabled)

		m, err := st.Memberships().GetMembership(ctx, c.ID, instructor.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MembershipRoleOwner, m.Role)
	})

	t.Run("slug collisions get a numeric suffix", func(t *testing.T) {
		c, err := svc.CreateCourse(ctx, instructor.ID, "Intro to Go", "")
		require.NoError(t, err)
		require.Equal(t, "intro-to-go-2", c.Slug)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, instructor.ID, "   ", "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestJoinByCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	instructor := seedUser(t, st, "teach@example.com", domain.UserRoleInstructor)
	student := seedUser(t, st, "kid@example.com", domain.UserRoleStudent)

	course, err := svc.CreateCourse(ctx, instructor.ID, "Databases", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(ctx, course.ID, instructor.ID, domain.CourseStatusActive))

	t.Run("student joins with the code", func(t *testing.T) {
		got, err := svc.JoinByCode(ctx, student.ID, course.JoinCode)
		require.NoError(t, err)
		require.Equal(t, course.ID, got.ID)

		m, err := st.Memberships().GetMembership(ctx, course.ID, student.ID)
		require.NoError(t, err)
		require.Equal(t, domain.MembershipRoleStudent, m.Role)
	})

	t.Run("joining again is a no-op", func(t *testing.T) {
		_, err := svc.JoinByCode(ctx, student.ID, course.JoinCode)
		require.NoError(t, err)
	})

	t.Run("unknown code rejected", func(t *testing.T) {
		_, err := svc.JoinByCode(ctx, student.ID, "ZZZZZZZZ")
		require.ErrorIs(t, err, ErrJoinCodeInvalid)
	})

	t.Run("disabled code rejected", func(t *testing.T) {
		_, err := svc.SetJoinCodeEnabled(ctx, course.ID, instructor.ID, false)
		require.NoError(t, err)

		other := seedUser(t, st, "late@example.com", domain.UserRoleStudent)
		_, err = svc.JoinByCode(ctx, other.ID, course.JoinCode)
		require.ErrorIs(t, err, ErrJoinCodeInvalid)
	})

	t.Run("rotation invalidates the old code", func(t *testing.T) {
		_, err := svc.SetJoinCodeEnabled(ctx, course.ID, instructor.ID, true)
		require.NoError(t, err)

		rotated, err := svc.RotateJoinCode(ctx, course.ID, instructor.ID)
		require.NoError(t, err)
		require.NotEqual(t, course.JoinCode, rotated.JoinCode)

		other := seedUser(t, st, "later@example.com", domain.UserRoleStudent)
		_, err = svc.JoinByCode(ctx, other.ID, course.JoinCode)
		require.ErrorIs(t, err, ErrJoinCodeInvalid)

		_, err = svc.JoinByCode(ctx, other.ID, rotated.JoinCode)
		require.NoError(t, err)
	})
}

func TestCourseMembership(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	instructor := seedUser(t, st, "teach@example.com", domain.UserRoleInstructor)
	student := seedUser(t, st, "kid@example.com", domain.UserRoleStudent)
	outsider := seedUser(t, st, "out@example.com", domain.UserRoleStudent)

	course, err := svc.CreateCourse(ctx, instructor.ID, "Algorithms", "")
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(ctx, course.ID, instructor.ID, student.ID,
		domain.MembershipRoleStudent))

	t.Run("non-members cannot read the course", func(t *testing.T) {
		_, err := svc.GetCourse(ctx, course.ID, outsider.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("members can", func(t *testing.T) {
		got, err := svc.GetCourse(ctx, course.ID, student.ID)
		require.NoError(t, err)
		require.Equal(t, course.ID, got.ID)
	})

	t.Run("roster lists owner first", func(t *testing.T) {
		members, err := svc.ListMembers(ctx, course.ID, student.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, domain.MembershipRoleOwner, members[0].Membership.Role)
	})

	t.Run("nobody can hand out OWNER", func(t *testing.T) {
		err := svc.AddMember(ctx, course.ID, instructor.ID, outsider.ID,
			domain.MembershipRoleOwner)
		require.ErrorIs(t, err, ErrOwnerImmutable)
	})

	t.Run("owner membership cannot be removed", func(t *testing.T) {
		err := svc.RemoveMember(ctx, course.ID, instructor.ID, instructor.ID)
		require.ErrorIs(t, err, ErrOwnerImmutable)
	})

	t.Run("students may leave", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, course.ID, student.ID, student.ID))
		_, err := svc.GetCourse(ctx, course.ID, student.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("students cannot remove others", func(t *testing.T) {
		require.NoError(t, svc.AddMember(ctx, course.ID, instructor.ID, student.ID,
			domain.MembershipRoleStudent))
		require.NoError(t, svc.AddMember(ctx, course.ID, instructor.ID, outsider.ID,
			domain.MembershipRoleStudent))

		err := svc.RemoveMember(ctx, course.ID, student.ID, outsider.ID)
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdateCourse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	instructor := seedUser(t, st, "teach@example.com", domain.UserRoleInstructor)
	course, err := svc.CreateCourse(ctx, instructor.ID, "Networks", "")
	require.NoError(t, err)

	t.Run("title change regenerates the slug", func(t *testing.T) {
		got, err := svc.UpdateCourse(ctx, course.ID, instructor.ID,
			"Computer Networks", "updated")
		require.NoError(t, err)
		require.Equal(t, "computer-networks", got.Slug)
		require.Equal(t, "updated", got.Description)
	})

	t.Run("archived courses are read-only", func(t *testing.T) {
		require.NoError(t, svc.SetStatus(ctx, course.ID, instructor.ID,
			domain.CourseStatusArchived))

		_, err := svc.UpdateCourse(ctx, course.ID, instructor.ID, "New Title", "")
		require.ErrorIs(t, err, ErrCourseArchived)
	})

	t.Run("archived courses reject joins", func(t *testing.T) {
		c, err := st.Courses().GetCourseByID(ctx, course.ID)
		require.NoError(t, err)

		student := seedUser(t, st, "kid@example.com", domain.UserRoleStudent)
		_, err = svc.JoinByCode(ctx, student.ID, c.JoinCode)
		require.ErrorIs(t, err, ErrCourseArchived)
	})
}
