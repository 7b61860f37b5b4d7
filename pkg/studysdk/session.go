package studysdk

import (
	"context"
	"sync"
	"time"
)

// refreshTimeout bounds the shared refresh call, which is detached from
// the contexts of the requests waiting on it.
const refreshTimeout = 30 * time.Second

// Session is the in-memory credential store. The access token is never
// persisted; the refresh token lives in the HTTP-only cookie managed by
// the client's jar.
//
// Checking() is true from construction until the first refresh attempt
// settles (either way), so UIs can hold their loading state instead of
// bouncing an anonymous user to the login screen while the session is
// still being restored.
type Session struct {
	client *Client

	mu       sync.Mutex
	token    string
	checking bool
	pending  *refreshOp

	bootOnce sync.Once
	bootErr  error

	navigate func()
}

// refreshOp is one in-flight refresh. Result fields are written exactly
// once, before done is closed, and never mutated after.
type refreshOp struct {
	done  chan struct{}
	token string
	err   error
}

func newSession(c *Client, navigate func()) *Session {
	return &Session{
		client:   c,
		checking: true,
		navigate: navigate,
	}
}

// Token returns the current access token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Checking reports whether the initial session restore is still pending.
func (s *Session) Checking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

// setToken stores a freshly issued access token. Storing a credential
// settles the initial check.
func (s *Session) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if token != "" {
		s.checking = false
	}
}

// clear drops the credential. The checking flag settles too: a cleared
// session is a known-signed-out session, not an undetermined one.
func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.checking = false
}

// refresh obtains a new access token, deduplicating concurrent callers:
// if a refresh is already in flight the caller waits on it and shares
// its outcome instead of issuing a second request. The shared call is
// detached from every caller's context, so a caller whose own context
// expires abandons its wait without disturbing the refresh still
// running for everyone else. The pending slot is cleared the moment the
// call settles, so a later caller starts a new refresh rather than
// consuming a stale result.
func (s *Session) refresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	op := s.pending
	if op == nil {
		op = &refreshOp{done: make(chan struct{})}
		s.pending = op
		go s.runRefresh(op)
	}
	s.mu.Unlock()

	select {
	case <-op.done:
		return op.token, op.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// runRefresh performs the shared refresh call under its own deadline:
// the outcome belongs to every queued request, not just the one that
// happened to start it.
func (s *Session) runRefresh(op *refreshOp) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	token, err := s.client.refreshCall(ctx)

	s.mu.Lock()
	s.pending = nil
	if err == nil {
		s.token = token
	}
	s.checking = false
	s.mu.Unlock()

	op.token, op.err = token, err
	close(op.done)
}

// bootstrap performs the startup refresh at most once. Concurrent and
// repeated calls block on the single attempt and share its outcome;
// sync.Once makes the result visible to every caller.
func (s *Session) bootstrap(ctx context.Context) error {
	s.bootOnce.Do(func() {
		_, s.bootErr = s.refresh(ctx)
	})
	return s.bootErr
}

// expire tears the session down after a failed refresh: best-effort
// server logout (errors swallowed), local clear, then the navigate
// callback.
func (s *Session) expire(ctx context.Context) {
	s.client.logoutCall(ctx)
	s.clear()
	if s.navigate != nil {
		s.navigate()
	}
}
