// Package studysdk is the client SDK for the StudyHall platform.
//
// The SDK owns the whole authenticated-session lifecycle so callers never
// touch tokens directly:
//
//   - The access token lives in an in-memory session store; the refresh
//     token travels only in the server's HTTP-only cookie, handled by the
//     client's cookie jar.
//   - A refresh coordinator deduplicates refresh calls: however many
//     goroutines need a fresh token at once, exactly one request to
//     /api/auth/token/refresh/ is issued and every caller settles with
//     its outcome.
//   - The transport attaches the bearer token to outgoing requests and,
//     on a 401, refreshes and replays the request once. If the refresh
//     fails the session is cleared, a best-effort server logout is
//     attempted, and the configured navigate callback fires.
//
// Typical use:
//
//	client := studysdk.New("https://studyhall.example",
//		studysdk.WithNavigate(showLoginScreen))
//
//	// Resume a previous session from the refresh cookie, if any.
//	if err := client.Bootstrap(ctx); err != nil {
//		// Not signed in; show the login screen.
//	}
//
//	me, err := client.Profile(ctx)
//
// All API methods return *APIError for non-2xx responses, carrying the
// HTTP status and the server's detail message.
package studysdk
