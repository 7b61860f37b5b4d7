package studysdk

import (
	"context"
	"net/http"
)

// Courses lists the courses the user belongs to.
func (c *Client) Courses(ctx context.Context) ([]CourseResponse, error) {
	var resp []CourseResponse
	err := c.do(ctx, http.MethodGet, "/api/courses/", nil, &resp, http.StatusOK)
	return resp, err
}

// CreateCourse creates a new draft course (instructors only).
func (c *Client) CreateCourse(ctx context.Context, title, description string) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodPost, "/api/courses/",
		CourseCreateRequest{Title: title, Description: description},
		&resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Course(ctx context.Context, courseID string) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodGet, "/api/courses/"+courseID+"/", nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateCourse(
	ctx context.Context,
	courseID, title, description string,
) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodPatch, "/api/courses/"+courseID+"/",
		CourseUpdateRequest{Title: title, Description: description},
		&resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+courseID+"/",
		nil, nil, http.StatusNoContent)
}

// SetCourseStatus transitions the course lifecycle (DRAFT, ACTIVE,
// ARCHIVED).
func (c *Client) SetCourseStatus(ctx context.Context, courseID, status string) error {
	return c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/status/",
		CourseStatusRequest{Status: status}, nil, http.StatusNoContent)
}

// JoinCourse enrolls the user using a join code.
func (c *Client) JoinCourse(ctx context.Context, code string) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodPost, "/api/enrollment/join/",
		JoinRequest{Code: code}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetJoinCodeEnabled toggles whether the course's join code accepts new
// enrollments.
func (c *Client) SetJoinCodeEnabled(ctx context.Context, courseID string, enabled bool) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/join-code/",
		JoinCodeRequest{Enabled: enabled}, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RotateJoinCode replaces the join code; the previous code stops
// working immediately.
func (c *Client) RotateJoinCode(ctx context.Context, courseID string) (*CourseResponse, error) {
	var resp CourseResponse
	err := c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/join-code/rotate/",
		nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CourseMembers(ctx context.Context, courseID string) ([]MemberResponse, error) {
	var resp []MemberResponse
	err := c.do(ctx, http.MethodGet, "/api/courses/"+courseID+"/members/",
		nil, &resp, http.StatusOK)
	return resp, err
}

func (c *Client) AddCourseMember(ctx context.Context, courseID, userID, role string) error {
	return c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/members/",
		MemberRequest{UserID: userID, Role: role}, nil, http.StatusNoContent)
}

func (c *Client) RemoveCourseMember(ctx context.Context, courseID, userID string) error {
	return c.do(ctx, http.MethodDelete,
		"/api/courses/"+courseID+"/members/"+userID+"/",
		nil, nil, http.StatusNoContent)
}
