package platform_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCourseLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	instructor := signUp(t, srv, "teach@studyhall.test", "INSTRUCTOR")
	student := signUp(t, srv, "learn@studyhall.test", "STUDENT")

	course, err := instructor.CreateCourse(ctx, "Distributed Systems", "Consensus and friends")
	require.NoError(t, err)
	require.Equal(t, "distributed-systems", course.Slug)
	require.Equal(t, "DRAFT", course.Status)
	require.NotEmpty(t, course.JoinCode)

	t.Run("students cannot create courses", func(t *testing.T) {
		_, err := student.CreateCourse(ctx, "Rogue Course", "")
		requireAPIError(t, err, http.StatusForbidden)
	})

	t.Run("join by code", func(t *testing.T) {
		joined, err := student.JoinCourse(ctx, course.JoinCode)
		require.NoError(t, err)
		require.Equal(t, course.ID, joined.ID)

		// Students never see the join code.
		require.Empty(t, joined.JoinCode)

		mine, err := student.Courses(ctx)
		require.NoError(t, err)
		require.Len(t, mine, 1)
	})

	t.Run("joining twice is idempotent", func(t *testing.T) {
		_, err := student.JoinCourse(ctx, course.JoinCode)
		require.NoError(t, err)
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		_, err := student.JoinCourse(ctx, "NOPE42")
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("roster lists the owner first", func(t *testing.T) {
		members, err := instructor.CourseMembers(ctx, course.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, "OWNER", members[0].Role)
		require.Equal(t, "teach@studyhall.test", members[0].Email)
	})

	t.Run("rotating the code invalidates the old one", func(t *testing.T) {
		rotated, err := instructor.RotateJoinCode(ctx, course.ID)
		require.NoError(t, err)
		require.NotEqual(t, course.JoinCode, rotated.JoinCode)

		other := signUp(t, srv, "late@studyhall.test", "STUDENT")
		_, err = other.JoinCourse(ctx, course.JoinCode)
		requireAPIError(t, err, http.StatusNotFound)

		_, err = other.JoinCourse(ctx, rotated.JoinCode)
		require.NoError(t, err)
	})

	t.Run("disabled codes reject joins", func(t *testing.T) {
		current, err := instructor.SetJoinCodeEnabled(ctx, course.ID, false)
		require.NoError(t, err)

		other := signUp(t, srv, "later@studyhall.test", "STUDENT")
		_, err = other.JoinCourse(ctx, current.JoinCode)
		requireAPIError(t, err, http.StatusNotFound)

		_, err = instructor.SetJoinCodeEnabled(ctx, course.ID, true)
		require.NoError(t, err)
	})

	t.Run("archived courses are read-only", func(t *testing.T) {
		require.NoError(t, instructor.SetCourseStatus(ctx, course.ID, "ARCHIVED"))

		_, err := instructor.UpdateCourse(ctx, course.ID, "New Title", "")
		requireAPIError(t, err, http.StatusBadRequest)
	})
}

func TestCourseAccessControl(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	instructor := signUp(t, srv, "owner@studyhall.test", "INSTRUCTOR")
	outsider := signUp(t, srv, "outsider@studyhall.test", "STUDENT")

	course, err := instructor.CreateCourse(ctx, "Secret Seminar", "")
	require.NoError(t, err)

	_, err = outsider.Course(ctx, course.ID)
	requireAPIError(t, err, http.StatusForbidden)

	_, err = outsider.CourseMembers(ctx, course.ID)
	requireAPIError(t, err, http.StatusForbidden)

	err = outsider.SetCourseStatus(ctx, course.ID, "ACTIVE")
	requireAPIError(t, err, http.StatusForbidden)
}
