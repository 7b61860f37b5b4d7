package http

import (
	"net/http"
	"time"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

// refreshCookieName is the HTTP-only cookie carrying the opaque refresh
// token. Path-limited so it only travels to auth endpoints.
const (
	refreshCookieName = "refresh_token"
	refreshCookiePath = "/api/auth/"
)

type AuthHandler struct {
	AuthService  *service.AuthService
	SecureCookie bool
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     refreshCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     refreshCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func refreshTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(refreshCookieName); err == nil {
		return c.Value
	}
	return ""
}

func userResponse(u domain.User) *studysdk.UserResponse {
	return &studysdk.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}

func (h *AuthHandler) writeTokenResponse(
	w http.ResponseWriter,
	status int,
	u domain.User,
	pair *domain.TokenPair,
) {
	h.setRefreshCookie(w, pair.RefreshToken, h.AuthService.RefreshTTL)
	httpx.WriteJSON(w, status, studysdk.TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   int(pair.ExpiresIn.Seconds()),
		User:        userResponse(u),
	})
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req studysdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	u, pair, err := h.AuthService.Register(r.Context(),
		req.Email, req.FirstName, req.LastName, req.Password,
		domain.UserRole(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeTokenResponse(w, http.StatusCreated, u, pair)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req studysdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	u, pair, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.writeTokenResponse(w, http.StatusOK, u, pair)
}

func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFromRequest(r)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "Token is invalid or expired.")
		return
	}

	u, pair, err := h.AuthService.Refresh(r.Context(), token)
	if err != nil {
		h.clearRefreshCookie(w)
		writeServiceError(w, r, err)
		return
	}
	h.writeTokenResponse(w, http.StatusOK, u, pair)
}

// HandleLogout revokes the cookie's refresh token and clears the cookie.
// Always succeeds, even with no or an unknown cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), refreshTokenFromRequest(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.clearRefreshCookie(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"detail": "Logged out."})
}
