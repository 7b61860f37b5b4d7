package platform_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall/pkg/studysdk"
)

// Login is on the strict per-IP limit: hammering it has to start
// returning 429 once the burst is used up.
func TestLoginRateLimit(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()

	c := studysdk.New(srv.URL)

	throttled := false
	for i := 0; i < 30; i++ {
		_, err := c.Login(ctx, "nobody@studyhall.test", "wrong")
		var apiErr *studysdk.APIError
		require.ErrorAs(t, err, &apiErr)

		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			// Still within the burst.
		case http.StatusTooManyRequests:
			throttled = true
		default:
			t.Fatalf("unexpected status %d", apiErr.StatusCode)
		}
		if throttled {
			break
		}
	}
	require.True(t, throttled, "strict limit never kicked in")
}
