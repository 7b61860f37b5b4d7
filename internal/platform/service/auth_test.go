package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/internal/platform/domain"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t, newTestStore(t))

	t.Run("creates account and issues tokens", func(t *testing.T) {
		u, pair, err := svc.Register(ctx, "Alice@Example.COM", "Alice", "Smith",
			testPassword, domain.UserRoleStudent)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", u.Email)
		require.Equal(t, domain.UserRoleStudent, u.Role)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "alice@example.com", "Other", "Person",
			testPassword, domain.UserRoleStudent)
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "bob@example.com", "Bob", "Jones",
			"short", domain.UserRoleStudent)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects self-assigned admin", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "eve@example.com", "Eve", "Adams",
			testPassword, domain.UserRoleAdmin)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "not-an-email", "No", "Body",
			testPassword, domain.UserRoleStudent)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestAuthService(t, st)
	u := seedUser(t, st, "alice@example.com", domain.UserRoleStudent)

	t.Run("valid credentials", func(t *testing.T) {
		got, pair, err := svc.Login(ctx, "alice@example.com", testPassword)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", testPassword)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, st.Users().SetActive(ctx, u.ID, false))
		_, _, err := svc.Login(ctx, "alice@example.com", testPassword)
		require.ErrorIs(t, err, ErrAccountDisabled)
		require.NoError(t, st.Users().SetActive(ctx, u.ID, true))
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestAuthService(t, st)
	seedUser(t, st, "alice@example.com", domain.UserRoleStudent)

	_, pair, err := svc.Login(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)

	_, rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.AccessToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	t.Run("old token is dead after rotation", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, pair.RefreshToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("rotated token still works", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, rotated.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not-a-real-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestAuthService(t, st)
	seedUser(t, st, "alice@example.com", domain.UserRoleStudent)

	_, pair, err := svc.Login(ctx, "alice@example.com", testPassword)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.RefreshToken))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh)

	t.Run("unknown and empty tokens succeed", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx, "unknown-token"))
		require.NoError(t, svc.Logout(ctx, ""))
	})
}
