package domain

import "time"

// TokenPair is what the auth endpoints hand back: a short-lived access token
// (JWT) in the body and an opaque refresh token destined for the cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string // "Bearer"
	ExpiresIn    time.Duration
}

// RefreshToken models the stored refresh token record. Only the SHA-256
// fingerprint of the token value is persisted.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	SessionID string // survives rotation so a login session stays traceable
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
