// internal/app/system/authz/middleware.go
package authz

import (
	"net/http"

	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
)

// RequireScope gates a route on a permission scope.
//
//   - no identity            → 401
//   - degraded identity      → 503 (profile store is unhealthy; the
//     session may well be an admin's, but we refuse to guess)
//   - identity without scope → 403
func RequireScope(scope Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := auth.CurrentIdentity(r)
			if !ok {
				httpapi.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if ident.Degraded {
				httpapi.WriteErrorBody(w, http.StatusServiceUnavailable, httpapi.ErrorBody{
					Error: "profile lookup is degraded, try again shortly",
					Hint:  "the user store did not answer; no permissions are assumed in this state",
				})
				return
			}
			if !HasScope(r, scope) {
				httpapi.WriteError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
