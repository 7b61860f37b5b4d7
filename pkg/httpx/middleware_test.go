package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/jwtx"
)

type stubVerifier struct {
	claims jwtx.Claims
	err    error
}

func (s stubVerifier) Verify(string) (jwtx.Claims, error) {
	return s.claims, s.err
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	t.Run("missing header is rejected", func(t *testing.T) {
		h := httpx.AuthnMiddleware(stubVerifier{})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("bad token is rejected", func(t *testing.T) {
		h := httpx.AuthnMiddleware(stubVerifier{err: errors.New("boom")})(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token injects identity", func(t *testing.T) {
		claims := jwtx.Claims{Role: "INSTRUCTOR"}
		claims.Subject = "user-1"

		var gotUser, gotRole string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser = httpx.UserIDFromCtx(r.Context())
			gotRole = httpx.RoleFromCtx(r.Context())
		})

		h := httpx.AuthnMiddleware(stubVerifier{claims: claims})(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "user-1", gotUser)
		require.Equal(t, "INSTRUCTOR", gotRole)
	})
}

func TestRequireAnyRole(t *testing.T) {
	claims := jwtx.Claims{Role: "STUDENT"}
	claims.Subject = "user-1"

	authed := func(next http.Handler) http.Handler {
		return httpx.AuthnMiddleware(stubVerifier{claims: claims})(next)
	}

	t.Run("allows listed role", func(t *testing.T) {
		h := httpx.Chain(okHandler(), authed, httpx.RequireAnyRole("STUDENT", "INSTRUCTOR"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids other roles", func(t *testing.T) {
		h := httpx.Chain(okHandler(), authed, httpx.RequireAnyRole("ADMIN"))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
