package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/idx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

var ErrOAuthExchange = errors.New("oauth_exchange_failed")

const googleIssuer = "https://accounts.google.com"

// GoogleOAuthService exchanges Google authorization codes for platform
// sessions, creating or linking accounts by verified email.
type GoogleOAuthService struct {
	Store  store.Store
	Auth   *AuthService
	Config *oauth2.Config

	verifier *oidc.IDTokenVerifier
}

func NewGoogleOAuthService(
	ctx context.Context,
	st store.Store,
	auth *AuthService,
	clientID, clientSecret, redirectURL string,
) (*GoogleOAuthService, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}

	return &GoogleOAuthService{
		Store: st,
		Auth:  auth,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

type googleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// ExchangeCode swaps an authorization code for tokens, verifies the ID
// token, then resolves the platform account: by linked Google subject
// first, by verified email second, otherwise a fresh student account.
func (s *GoogleOAuthService) ExchangeCode(
	ctx context.Context,
	code string,
) (domain.User, *domain.TokenPair, error) {
	log := slogx.FromContext(ctx)

	tok, err := s.Config.Exchange(ctx, code)
	if err != nil {
		log.Info("google code exchange failed", "err", err)
		return domain.User{}, nil, ErrOAuthExchange
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domain.User{}, nil, ErrOAuthExchange
	}

	idToken, err := s.verifier.Verify(ctx, rawID)
	if err != nil {
		log.Warn("google id token verification failed", "err", err)
		return domain.User{}, nil, ErrOAuthExchange
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return domain.User{}, nil, ErrOAuthExchange
	}
	if claims.Sub == "" || !claims.EmailVerified {
		return domain.User{}, nil, ErrOAuthExchange
	}

	u, err := s.resolveUser(ctx, claims)
	if err != nil {
		return domain.User{}, nil, err
	}
	if !u.Active {
		return domain.User{}, nil, ErrAccountDisabled
	}

	pair, err := s.Auth.IssueTokens(ctx, u, "")
	if err != nil {
		return domain.User{}, nil, err
	}
	return u, pair, nil
}

func (s *GoogleOAuthService) resolveUser(
	ctx context.Context,
	claims googleClaims,
) (domain.User, error) {
	users := s.Store.Users()

	u, err := users.GetUserByGoogleSub(ctx, claims.Sub)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	email := strings.ToLower(claims.Email)
	u, err = users.GetUserByEmail(ctx, email)
	if err == nil {
		// Existing password account; link it to the Google subject.
		if err := users.LinkGoogleSub(ctx, u.ID, claims.Sub); err != nil {
			return domain.User{}, err
		}
		sub := claims.Sub
		u.GoogleSub = &sub
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	// First sign-in: OAuth-only accounts have no password hash.
	now := time.Now().UTC()
	sub := claims.Sub
	u = domain.User{
		ID:        idx.New().String(),
		Email:     email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Role:      domain.UserRoleStudent,
		GoogleSub: &sub,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.FirstName == "" {
		u.FirstName = email
	}
	if err := users.CreateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
