package http

import (
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

type OAuthHandler struct {
	Google *service.GoogleOAuthService
	Auth   *AuthHandler
}

// HandleGoogle exchanges a Google authorization code for platform tokens.
func (h *OAuthHandler) HandleGoogle(w http.ResponseWriter, r *http.Request) {
	if h.Google == nil {
		httpx.WriteError(w, http.StatusNotImplemented,
			"Google sign-in is not configured.")
		return
	}

	var req studysdk.GoogleExchangeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	u, pair, err := h.Google.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Auth.writeTokenResponse(w, http.StatusOK, u, pair)
}

// HandleMicrosoft is a placeholder; the provider was never wired up.
func (h *OAuthHandler) HandleMicrosoft(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, http.StatusNotImplemented,
		"Microsoft sign-in is not supported.")
}
