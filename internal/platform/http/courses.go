package http

import (
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/internal/platform/store"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

type CoursesHandler struct {
	CourseService *service.CourseService
}

func courseResponse(c domain.Course, staff bool) studysdk.CourseResponse {
	resp := studysdk.CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
	}
	if staff {
		enabled := c.JoinCodeEnabled
		resp.JoinCode = c.JoinCode
		resp.JoinCodeEnabled = &enabled
	}
	return resp
}

// staffOn reports whether the caller holds a staff membership. Errors
// collapse to false; the underlying operation already authorized the read.
func (h *CoursesHandler) staffOn(r *http.Request, courseID string) bool {
	m, err := h.CourseService.Membership(r.Context(), courseID,
		httpx.UserIDFromCtx(r.Context()))
	return err == nil && m.Role.Staff()
}

func (h *CoursesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req studysdk.CourseCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	c, err := h.CourseService.CreateCourse(r.Context(),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, courseResponse(c, true))
}

func (h *CoursesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromCtx(r.Context())
	courses, err := h.CourseService.ListMyCourses(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]studysdk.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, courseResponse(c, h.staffOn(r, c.ID)))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CoursesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	c, err := h.CourseService.GetCourse(r.Context(), courseID,
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(c, h.staffOn(r, courseID)))
}

func (h *CoursesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req studysdk.CourseUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	c, err := h.CourseService.UpdateCourse(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(c, true))
}

func (h *CoursesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.CourseService.DeleteCourse(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoursesHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req studysdk.CourseStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	err := h.CourseService.SetStatus(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), domain.CourseStatus(req.Status))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoursesHandler) HandleSetJoinCode(w http.ResponseWriter, r *http.Request) {
	var req studysdk.JoinCodeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	c, err := h.CourseService.SetJoinCodeEnabled(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Enabled)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(c, true))
}

func (h *CoursesHandler) HandleRotateJoinCode(w http.ResponseWriter, r *http.Request) {
	c, err := h.CourseService.RotateJoinCode(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(c, true))
}

func memberResponse(m store.CourseMember) studysdk.MemberResponse {
	return studysdk.MemberResponse{
		UserID:    m.User.ID,
		Email:     m.User.Email,
		FirstName: m.User.FirstName,
		LastName:  m.User.LastName,
		Role:      string(m.Membership.Role),
		JoinedAt:  m.Membership.CreatedAt,
	}
}

func (h *CoursesHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.CourseService.ListMembers(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]studysdk.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CoursesHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	var req studysdk.MemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	err := h.CourseService.AddMember(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.UserID,
		domain.MembershipRole(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CoursesHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.CourseService.RemoveMember(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type EnrollmentHandler struct {
	CourseService *service.CourseService
}

// HandleJoin enrolls the caller using a join code.
func (h *EnrollmentHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req studysdk.JoinRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	c, err := h.CourseService.JoinByCode(r.Context(),
		httpx.UserIDFromCtx(r.Context()), req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, courseResponse(c, false))
}
