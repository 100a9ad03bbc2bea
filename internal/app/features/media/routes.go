// internal/app/features/media/routes.go
package media

import (
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the media library routes, typically at
// /api/admin/media. Browsing only needs content:read; uploading and
// deleting need media:write.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireSignedIn)
		mr.Use(authz.RequireScope(authz.ScopeContentRead))
		mr.Get("/", h.ServeList)
		mr.Get("/{id}", h.ServeGet)
	})

	r.Group(func(mr chi.Router) {
		mr.Use(sm.RequireSignedIn)
		mr.Use(authz.RequireScope(authz.ScopeMediaWrite))
		mr.Post("/", h.HandleUpload)
		mr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
