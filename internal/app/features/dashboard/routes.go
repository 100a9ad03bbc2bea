// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the dashboard routes, typically at
// /api/admin/dashboard.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(authz.RequireScope(authz.ScopeContentRead))

	r.Get("/stats", h.ServeStats)
	r.Get("/feed", h.ServeFeed)

	return r
}
