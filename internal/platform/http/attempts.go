package http

import (
	"net/http"

	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/pkg/httpx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

type AttemptsHandler struct {
	AttemptService *service.AttemptService
}

func attemptQuestion(q *service.QuestionView) *studysdk.AttemptQuestion {
	if q == nil {
		return nil
	}
	return &studysdk.AttemptQuestion{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Choices:    q.Choices,
		Difficulty: string(q.Difficulty),
	}
}

func attemptResponse(v service.AttemptView) studysdk.AttemptResponse {
	a := v.Attempt
	return studysdk.AttemptResponse{
		ID:                a.ID,
		QuizID:            a.QuizID,
		Status:            string(a.Status),
		CurrentDifficulty: string(a.CurrentDifficulty),
		NumAnswered:       a.NumAnswered,
		NumCorrect:        a.NumCorrect,
		CompletedAt:       a.CompletedAt,
		Question:          attemptQuestion(v.Question),
	}
}

// HandleStart opens or resumes the caller's attempt on a quiz.
func (h *AttemptsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	view, err := h.AttemptService.StartAttempt(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, attemptResponse(view))
}

func (h *AttemptsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.AttemptService.GetAttempt(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, attemptResponse(view))
}

func (h *AttemptsHandler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	var req studysdk.AnswerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Malformed JSON body.")
		return
	}

	res, err := h.AttemptService.SubmitAnswer(r.Context(), r.PathValue("id"),
		httpx.UserIDFromCtx(r.Context()), req.QuestionID, req.SelectedIndex)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, studysdk.AnswerResponse{
		Correct:      res.Correct,
		CorrectIndex: res.CorrectIndex,
		Attempt: attemptResponse(service.AttemptView{
			Attempt: res.Attempt,
		}),
		NextQuestion: attemptQuestion(res.NextQuestion),
	})
}
