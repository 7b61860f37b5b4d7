package domain

import "time"

type CourseStatus string

const (
	CourseStatusDraft    CourseStatus = "DRAFT"
	CourseStatusActive   CourseStatus = "ACTIVE"
	CourseStatusArchived CourseStatus = "ARCHIVED"
)

type Course struct {
	ID              string
	OwnerID         string
	Title           string
	Slug            string // unique, derived from title
	Description     string
	Status          CourseStatus
	JoinCode        string // 8 chars, A-Z0-9
	JoinCodeEnabled bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Archived courses are read-only.
func (c *Course) Archived() bool { return c.Status == CourseStatusArchived }

type MembershipRole string

const (
	MembershipRoleOwner      MembershipRole = "OWNER"
	MembershipRoleInstructor MembershipRole = "INSTRUCTOR"
	MembershipRoleTA         MembershipRole = "TA"
	MembershipRoleStudent    MembershipRole = "STUDENT"
)

// Staff reports whether the role can manage course content.
func (r MembershipRole) Staff() bool {
	switch r {
	case MembershipRoleOwner, MembershipRoleInstructor, MembershipRoleTA:
		return true
	}
	return false
}

// Membership ties a user to a course. (course, user) is unique.
type Membership struct {
	ID        string
	CourseID  string
	UserID    string
	Role      MembershipRole
	CreatedAt time.Time
}
