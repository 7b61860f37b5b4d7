package studysdk

import (
	"context"
	"net/http"
)

// Chapters lists a course's chapters in order.
func (c *Client) Chapters(ctx context.Context, courseID string) ([]ChapterResponse, error) {
	var resp []ChapterResponse
	err := c.do(ctx, http.MethodGet, "/api/courses/"+courseID+"/chapters/",
		nil, &resp, http.StatusOK)
	return resp, err
}

func (c *Client) CreateChapter(
	ctx context.Context,
	courseID, title string,
	position int,
) (*ChapterResponse, error) {
	var resp ChapterResponse
	err := c.do(ctx, http.MethodPost, "/api/courses/"+courseID+"/chapters/",
		ChapterRequest{Title: title, Position: position}, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Questions lists a chapter's question bank, answer keys included
// (staff only).
func (c *Client) Questions(ctx context.Context, chapterID string) ([]QuestionResponse, error) {
	var resp []QuestionResponse
	err := c.do(ctx, http.MethodGet, "/api/chapters/"+chapterID+"/questions/",
		nil, &resp, http.StatusOK)
	return resp, err
}

func (c *Client) CreateQuestion(
	ctx context.Context,
	chapterID string,
	req QuestionRequest,
) (*QuestionResponse, error) {
	var resp QuestionResponse
	err := c.do(ctx, http.MethodPost, "/api/chapters/"+chapterID+"/questions/",
		req, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quizzes lists a chapter's quizzes. Students only see published ones.
func (c *Client) Quizzes(ctx context.Context, chapterID string) ([]QuizResponse, error) {
	var resp []QuizResponse
	err := c.do(ctx, http.MethodGet, "/api/chapters/"+chapterID+"/quizzes/",
		nil, &resp, http.StatusOK)
	return resp, err
}

// AvailableQuizzes lists every published quiz across the user's courses.
func (c *Client) AvailableQuizzes(ctx context.Context) ([]QuizResponse, error) {
	var resp []QuizResponse
	err := c.do(ctx, http.MethodGet, "/api/quizzes/", nil, &resp, http.StatusOK)
	return resp, err
}

func (c *Client) CreateQuiz(
	ctx context.Context,
	chapterID string,
	req QuizRequest,
) (*QuizResponse, error) {
	var resp QuizResponse
	err := c.do(ctx, http.MethodPost, "/api/chapters/"+chapterID+"/quizzes/",
		req, &resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateQuiz edits a quiz; setting Published true makes it startable.
func (c *Client) UpdateQuiz(
	ctx context.Context,
	quizID string,
	req QuizRequest,
) (*QuizResponse, error) {
	var resp QuizResponse
	err := c.do(ctx, http.MethodPatch, "/api/quizzes/"+quizID+"/",
		req, &resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
