package http

import (
	"errors"
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/slogx"
)

// writeServiceError maps service sentinels onto HTTP statuses with the
// platform's {"detail": ...} body. Anything unmapped is a 500 and gets
// logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input.")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized,
			"No active account found with the given credentials.")
	case errors.Is(err, service.ErrAccountDisabled):
		httpx.WriteError(w, http.StatusForbidden, "User account is disabled.")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteError(w, http.StatusBadRequest,
			"A user with that email already exists.")
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, "Token is invalid or expired.")
	case errors.Is(err, service.ErrOAuthExchange):
		httpx.WriteError(w, http.StatusBadRequest, "Google sign-in failed.")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden,
			"You do not have permission to perform this action.")
	case errors.Is(err, service.ErrCourseArchived):
		httpx.WriteError(w, http.StatusBadRequest, "This course is archived.")
	case errors.Is(err, service.ErrJoinCodeInvalid):
		httpx.WriteError(w, http.StatusNotFound, "Invalid join code.")
	case errors.Is(err, service.ErrOwnerImmutable):
		httpx.WriteError(w, http.StatusBadRequest,
			"The course owner membership cannot be changed.")
	case errors.Is(err, service.ErrQuizUnpublished):
		httpx.WriteError(w, http.StatusBadRequest, "This quiz is not published.")
	case errors.Is(err, service.ErrQuestionBankEmpty):
		httpx.WriteError(w, http.StatusBadRequest,
			"This quiz has no available questions.")
	case errors.Is(err, service.ErrAttemptCompleted):
		httpx.WriteError(w, http.StatusBadRequest,
			"This attempt is already completed.")
	case errors.Is(err, service.ErrQuestionInvalid):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid question.")
	case errors.Is(err, service.ErrInvalidChoice):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid choice index.")
	case errors.Is(err, service.ErrNotCurrentQuestion):
		httpx.WriteError(w, http.StatusConflict,
			"That is not the current question for this attempt.")
	case errors.Is(err, service.ErrDuplicateAnswer):
		httpx.WriteError(w, http.StatusConflict,
			"This question has already been answered.")
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Not found.")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
