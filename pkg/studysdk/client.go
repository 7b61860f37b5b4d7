package studysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to a StudyHall server. It owns the session: access token
// in memory, refresh token in the cookie jar, automatic refresh and
// retry on 401.
type Client struct {
	BaseURL string

	httpc   *http.Client
	session *Session
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	navigate   func()
}

// WithHTTPClient supplies a custom HTTP client. The client is shallow
// copied: the copy's transport becomes the base under the session
// transport and gains a cookie jar when it has none, while the supplied
// client is left untouched.
func WithHTTPClient(h *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = h }
}

// WithNavigate sets the callback invoked when the session expires and
// the user has to sign in again (the SPA's "navigate to login").
func WithNavigate(fn func()) Option {
	return func(o *clientOptions) { o.navigate = fn }
}

// New creates a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	httpc := &http.Client{Timeout: 30 * time.Second}
	if o.httpClient != nil {
		// Work on a copy so the caller's client is not rewired
		// behind their back.
		cp := *o.httpClient
		httpc = &cp
	}
	if httpc.Jar == nil {
		// The refresh cookie has to survive between requests.
		jar, _ := cookiejar.New(nil)
		httpc.Jar = jar
	}

	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   httpc,
	}
	c.session = newSession(c, o.navigate)

	base := httpc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	httpc.Transport = &authTransport{base: base, session: c.session}

	return c
}

// Session exposes the session store for UI state (token presence,
// initial check).
func (c *Client) Session() *Session { return c.session }

// Bootstrap restores a previous session from the refresh cookie. It
// issues at most one refresh request no matter how many times it is
// called; concurrent calls share the outcome. An error means there is
// no session to restore and the user must sign in.
func (c *Client) Bootstrap(ctx context.Context) error {
	return c.session.bootstrap(ctx)
}

// do performs a JSON request and decodes the response into out (when
// non-nil). Non-expected statuses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any, expected int) error {
	return c.doMarked(ctx, method, path, in, out, expected, "")
}

// doNoRetry is for auth endpoints: their 401s are real answers, not a
// cue to refresh.
func (c *Client) doNoRetry(ctx context.Context, method, path string, in, out any, expected int) error {
	return c.doMarked(ctx, method, path, in, out, expected, markNoAuth)
}

func (c *Client) doMarked(
	ctx context.Context,
	method, path string,
	in, out any,
	expected int,
	mark string,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("studysdk: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("studysdk: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mark != "" {
		req.Header.Set(markHeader, mark)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("studysdk: read response: %w", err)
	}
	if resp.StatusCode != expected {
		return parseAPIError(resp, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("studysdk: decode response: %w", err)
		}
	}
	return nil
}

// refreshCall issues the actual refresh request. Only the session's
// coordinator calls this.
func (c *Client) refreshCall(ctx context.Context) (string, error) {
	var resp TokenResponse
	err := c.doNoRetry(ctx, http.MethodPost, "/api/auth/token/refresh/",
		nil, &resp, http.StatusOK)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// logoutCall is the best-effort server-side logout; errors are the
// caller's to ignore.
func (c *Client) logoutCall(ctx context.Context) {
	_ = c.doNoRetry(ctx, http.MethodPost, "/api/auth/logout/", nil, nil, http.StatusOK)
}
