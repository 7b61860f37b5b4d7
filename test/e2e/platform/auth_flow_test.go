package platform_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/pkg/studysdk"
)

func TestRegisterAndLoginFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	signUp(t, srv, "alice@studyhall.test", "STUDENT")

	t.Run("login with the registered credentials", func(t *testing.T) {
		c := studysdk.New(srv.URL)
		user, err := c.Login(ctx, "alice@studyhall.test", testPassword)
		require.NoError(t, err)
		require.Equal(t, "alice@studyhall.test", user.Email)
		require.NotEmpty(t, c.Session().Token())
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		c := studysdk.New(srv.URL)
		_, err := c.Login(ctx, "alice@studyhall.test", "nope")
		requireAPIError(t, err, http.StatusUnauthorized)
		require.Empty(t, c.Session().Token())
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		c := studysdk.New(srv.URL)
		_, err := c.Register(ctx, studysdk.RegisterRequest{
			Email:     "alice@studyhall.test",
			FirstName: "Other",
			LastName:  "Alice",
			Password:  testPassword,
		})
		requireAPIError(t, err, http.StatusBadRequest)
	})

	t.Run("admin cannot be self-registered", func(t *testing.T) {
		c := studysdk.New(srv.URL)
		_, err := c.Register(ctx, studysdk.RegisterRequest{
			Email:     "eve@studyhall.test",
			FirstName: "Eve",
			LastName:  "Dropper",
			Password:  testPassword,
			Role:      "ADMIN",
		})
		requireAPIError(t, err, http.StatusBadRequest)
	})
}

// The SDK restores a session from the refresh cookie alone: bootstrap
// mints a fresh access token and rotates the cookie in the jar.
func TestSessionRestoreAndRotation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	c := signUp(t, srv, "bob@studyhall.test", "STUDENT")
	first := c.Session().Token()
	require.NotEmpty(t, first)

	require.NoError(t, c.Bootstrap(ctx))
	second := c.Session().Token()
	require.NotEmpty(t, second)
	require.NotEqual(t, first, second)

	profile, err := c.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "bob@studyhall.test", profile.Email)
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	c := signUp(t, srv, "carol@studyhall.test", "STUDENT")
	c.Logout(ctx)
	require.Empty(t, c.Session().Token())

	// The refresh token was revoked server-side: a bootstrap attempt on
	// the same jar must fail.
	require.Error(t, c.Bootstrap(ctx))
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	c := signUp(t, srv, "dora@studyhall.test", "STUDENT")

	updated, err := c.UpdateProfile(ctx, "Dora", "Explorer")
	require.NoError(t, err)
	require.Equal(t, "Dora", updated.FirstName)
	require.Equal(t, "Explorer", updated.LastName)

	// Empty fields keep their current values.
	again, err := c.UpdateProfile(ctx, "", "Explorer II")
	require.NoError(t, err)
	require.Equal(t, "Dora", again.FirstName)
	require.Equal(t, "Explorer II", again.LastName)
}

func TestAnonymousRequestsAreRejected(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	c := studysdk.New(srv.URL)
	_, err := c.Courses(context.Background())
	require.ErrorIs(t, err, studysdk.ErrSessionExpired)
}
