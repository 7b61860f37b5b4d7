package studysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when a request's retry-after-refresh
// cycle fails: the refresh token is gone or rejected and the caller must
// sign in again.
var ErrSessionExpired = errors.New("studysdk: session expired")

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("studysdk: HTTP %d: %s", e.StatusCode, e.Detail)
}

// parseAPIError builds an APIError from a response body, falling back to
// the HTTP status text when the body is not the standard error shape.
func parseAPIError(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return &APIError{StatusCode: resp.StatusCode, Detail: er.Detail}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Detail:     http.StatusText(resp.StatusCode),
	}
}
