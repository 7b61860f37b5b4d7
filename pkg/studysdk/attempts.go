package studysdk

import (
	"context"
	"net/http"
)

// StartAttempt opens (or resumes) an attempt on a published quiz.
func (c *Client) StartAttempt(ctx context.Context, quizID string) (*AttemptResponse, error) {
	var resp AttemptResponse
	err := c.do(ctx, http.MethodPost, "/api/quizzes/"+quizID+"/attempts/",
		nil, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Attempt returns the attempt's progress and, when completed, the score.
func (c *Client) Attempt(ctx context.Context, attemptID string) (*AttemptResponse, error) {
	var resp AttemptResponse
	err := c.do(ctx, http.MethodGet, "/api/attempts/"+attemptID+"/",
		nil, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitAnswer grades a response to the attempt's current question.
func (c *Client) SubmitAnswer(
	ctx context.Context,
	attemptID, questionID string,
	selectedIndex int,
) (*AnswerResponse, error) {
	var resp AnswerResponse
	err := c.do(ctx, http.MethodPost, "/api/attempts/"+attemptID+"/answer/",
		AnswerRequest{QuestionID: questionID, SelectedIndex: selectedIndex},
		&resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
