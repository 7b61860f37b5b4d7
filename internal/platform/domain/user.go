package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	UserRoleStudent    UserRole = "STUDENT"
	UserRoleInstructor UserRole = "INSTRUCTOR"
	UserRoleAdmin      UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known platform roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleInstructor, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string // stored lowercase, unique
	FirstName    string
	LastName     string
	PasswordHash string  // argon2 encoded; empty for OAuth-only accounts
	Role         UserRole
	GoogleSub    *string // OIDC subject when the account is linked to Google
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName is the display name used in token claims and profile responses.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
