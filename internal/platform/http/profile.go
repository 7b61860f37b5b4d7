package http

import (
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

type ProfileHandler struct {
	UserService *service.UserService
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetProfile(r.Context(), httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(u))
}

func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req studysdk.ProfileUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(),
		httpx.UserIDFromCtx(r.Context()), req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, userResponse(u))
}
