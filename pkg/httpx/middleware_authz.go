package httpx

import "net/http"

// RequireAnyRole allows the request through only when the caller's platform
// role is one of those listed. Must run after AuthnMiddleware.
func RequireAnyRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		want[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := want[RoleFromCtx(r.Context())]; !ok {
				WriteError(w, http.StatusForbidden,
					"You do not have permission to perform this action.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
