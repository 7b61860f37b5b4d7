package http

import (
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/domain"
	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

// ContentHandler serves chapters, questions and quizzes.
type ContentHandler struct {
	QuizService *service.QuizService
}

func chapterResponse(c domain.Chapter) studysdk.ChapterResponse {
	return studysdk.ChapterResponse{
		ID:       c.ID,
		CourseID: c.CourseID,
		Title:    c.Title,
		Position: c.Position,
	}
}

func questionResponse(q domain.Question) studysdk.QuestionResponse {
	return studysdk.QuestionResponse{
		ID:           q.ID,
		ChapterID:    q.ChapterID,
		Prompt:       q.Prompt,
		Choices:      q.Choices,
		CorrectIndex: q.CorrectIndex,
		Difficulty:   string(q.Difficulty),
		Active:       q.Active,
	}
}

func quizResponse(q domain.Quiz) studysdk.QuizResponse {
	return studysdk.QuizResponse{
		ID:            q.ID,
		ChapterID:     q.ChapterID,
		Title:         q.Title,
		QuestionCount: q.QuestionCount,
		Published:     q.Published,
	}
}

// --- chapters ---

func (h *ContentHandler) HandleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var req studysdk.ChapterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	ch, err := h.QuizService.CreateChapter(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.Position)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, chapterResponse(ch))
}

func (h *ContentHandler) HandleListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.QuizService.ListChapters(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]studysdk.ChapterResponse, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, chapterResponse(ch))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ContentHandler) HandleUpdateChapter(w http.ResponseWriter, r *http.Request) {
	var req studysdk.ChapterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	ch, err := h.QuizService.UpdateChapter(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.Position)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, chapterResponse(ch))
}

func (h *ContentHandler) HandleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	err := h.QuizService.DeleteChapter(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- questions ---

func (h *ContentHandler) HandleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req studysdk.QuestionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	q, err := h.QuizService.CreateQuestion(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Prompt, req.Choices,
		req.CorrectIndex, domain.Difficulty(req.Difficulty))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, questionResponse(q))
}

func (h *ContentHandler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.QuizService.ListQuestions(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]studysdk.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionResponse(q))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ContentHandler) HandleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req studysdk.QuestionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	q, err := h.QuizService.UpdateQuestion(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Prompt, req.Choices,
		req.CorrectIndex, domain.Difficulty(req.Difficulty), active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, questionResponse(q))
}

func (h *ContentHandler) HandleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	err := h.QuizService.DeleteQuestion(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- quizzes ---

func (h *ContentHandler) HandleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req studysdk.QuizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	q, err := h.QuizService.CreateQuiz(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.QuestionCount, published)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, quizResponse(q))
}

func (h *ContentHandler) HandleListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.QuizService.ListQuizzes(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeQuizList(w, quizzes)
}

// HandleListAvailable is the student dashboard feed: every published quiz
// across the caller's courses.
func (h *ContentHandler) HandleListAvailable(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.QuizService.ListAvailableQuizzes(r.Context(),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeQuizList(w, quizzes)
}

func writeQuizList(w http.ResponseWriter, quizzes []domain.Quiz) {
	out := make([]studysdk.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, quizResponse(q))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ContentHandler) HandleUpdateQuiz(w http.ResponseWriter, r *http.Request) {
	var req studysdk.QuizRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	q, err := h.QuizService.UpdateQuiz(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.Title, req.QuestionCount, published)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, quizResponse(q))
}

func (h *ContentHandler) HandleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	err := h.QuizService.DeleteQuiz(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
