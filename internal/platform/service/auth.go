package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/cryptox"
	"github.com/studyhall/studyhall/pkg/idx"
	"github.com/studyhall/studyhall/pkg/jwtx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrInvalidInput       = errors.New("invalid_input")
)

const minPasswordLength = 8

// AuthService owns registration, login and the refresh token lifecycle.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Register creates a new account and logs it in. Only the student and
// instructor roles are self-assignable.
func (s *AuthService) Register(
	ctx context.Context,
	email, firstName, lastName, password string,
	role domain.UserRole,
) (domain.User, *domain.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if email == "" || !strings.Contains(email, "@") || firstName == "" {
		return domain.User{}, nil, ErrInvalidInput
	}
	if len(password) < minPasswordLength {
		return domain.User{}, nil, ErrInvalidInput
	}
	// Accounts default to student; ADMIN is never self-assignable.
	if role == "" {
		role = domain.UserRoleStudent
	}
	if role != domain.UserRoleStudent && role != domain.UserRoleInstructor {
		return domain.User{}, nil, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, nil, err
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, nil, ErrEmailTaken
		}
		return domain.User{}, nil, err
	}

	pair, err := s.IssueTokens(ctx, u, "")
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, pair, nil
}

// Login verifies credentials and issues a fresh session.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
) (domain.User, *domain.TokenPair, error) {
	log := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, err
	}

	if u.PasswordHash == "" || cryptox.VerifyPassword(password, u.PasswordHash) != nil {
		log.Info("login failed", "email", email)
		return domain.User{}, nil, ErrInvalidCredentials
	}
	if !u.Active {
		return domain.User{}, nil, ErrAccountDisabled
	}

	pair, err := s.IssueTokens(ctx, u, "")
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, pair, nil
}

// Refresh validates the presented refresh token by fingerprint lookup,
// rotates it (revoke old + insert new atomically) and returns a new pair.
// Every failure mode collapses to ErrInvalidRefresh so the endpoint leaks
// nothing about why a token was rejected.
func (s *AuthService) Refresh(
	ctx context.Context,
	refreshOpaque string,
) (domain.User, *domain.TokenPair, error) {
	now := time.Now().UTC()

	fp := cryptox.FingerprintToken(refreshOpaque)
	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, nil, ErrInvalidRefresh
		}
		return domain.User{}, nil, err
	}

	if rt.Revoked || now.After(rt.ExpiresAt) {
		return domain.User{}, nil, ErrInvalidRefresh
	}

	u, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, nil, ErrInvalidRefresh
		}
		return domain.User{}, nil, err
	}
	if !u.Active {
		return domain.User{}, nil, ErrInvalidRefresh
	}

	accessToken, err := s.signAccess(u, rt.SessionID, now)
	if err != nil {
		return domain.User{}, nil, err
	}

	newOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.User{}, nil, err
	}

	newRT := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(newOpaque),
		SessionID: rt.SessionID, // session survives rotation
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Rotation must be atomic: the old token dies in the same transaction
	// that creates its replacement.
	if err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RefreshTokens().RevokeRefreshToken(ctx, fp); err != nil {
			return err
		}
		return tx.RefreshTokens().CreateRefreshToken(ctx, newRT)
	}); err != nil {
		return domain.User{}, nil, err
	}

	return u, &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

// Logout revokes the presented refresh token. Unknown tokens are fine; the
// endpoint always succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshOpaque string) error {
	if refreshOpaque == "" {
		return nil
	}
	return s.Store.RefreshTokens().RevokeRefreshToken(
		ctx, cryptox.FingerprintToken(refreshOpaque))
}

// IssueTokens creates an access token and a stored refresh token for the
// user. An empty sessionID starts a new session.
func (s *AuthService) IssueTokens(
	ctx context.Context,
	u domain.User,
	sessionID string,
) (*domain.TokenPair, error) {
	now := time.Now().UTC()
	if sessionID == "" {
		sessionID = idx.New().String()
	}

	accessToken, err := s.signAccess(u, sessionID, now)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	rt := domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(refreshOpaque),
		SessionID: sessionID,
		ExpiresAt: now.Add(s.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.RefreshTokens().CreateRefreshToken(ctx, rt); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		TokenType:    "Bearer",
		ExpiresIn:    s.AccessTTL,
	}, nil
}

func (s *AuthService) signAccess(u domain.User, sessionID string, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(
		u.ID,
		sessionID,
		u.Email,
		string(u.Role),
		u.FullName(),
		s.AccessTTL,
		s.Issuer,
		now,
	)
	return s.Signer.Sign(claims)
}
