package studysdk

import (
	"fmt"
	"net/http"
)

// markHeader tags requests that must not enter the refresh-and-replay
// cycle: auth endpoints whose 401s are meaningful as-is. The header is
// stripped before the request leaves the transport.
const (
	markHeader = "X-Studyhall-Mark"
	markNoAuth = "no-auth-retry"
)

// authTransport attaches the bearer token to outgoing requests and
// retries once after a refresh when the server answers 401. The replay
// goes straight to the base transport, so a request can never be
// retried twice. Requests that arrive while a refresh is in flight wait
// for it and settle with its outcome.
type authTransport struct {
	base    http.RoundTripper
	session *Session
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	mark := req.Header.Get(markHeader)

	out := req.Clone(req.Context())
	out.Header.Del(markHeader)
	if out.Header.Get("Authorization") == "" {
		if tok := t.session.Token(); tok != "" {
			out.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || mark != "" {
		return resp, err
	}

	// 401 on a retryable request: join (or start) a refresh. Every
	// request queued here settles with the same refresh's outcome.
	token, rerr := t.session.refresh(req.Context())
	if rerr != nil {
		resp.Body.Close()
		if req.Context().Err() != nil {
			// The caller gave up waiting. The shared refresh keeps
			// running and the session stays intact for everyone else.
			return nil, rerr
		}
		t.session.expire(req.Context())
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, rerr)
	}
	resp.Body.Close()

	retry := req.Clone(req.Context())
	retry.Header.Del(markHeader)
	retry.Header.Set("Authorization", "Bearer "+token)
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}
		retry.Body = body
	}
	return t.base.RoundTrip(retry)
}
