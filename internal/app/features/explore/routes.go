// internal/app/features/explore/routes.go
package explore

import (
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// PublicRoutes mounts the read-only journal routes (published articles only).
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePublicList)
	r.Get("/{slug}", h.ServePublicGet)
	return r
}

// AdminRoutes mounts the privileged article CRUD routes.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(authz.RequireScope(authz.ScopeContentRead))
		pr.Get("/", h.ServeAdminList)
		pr.Get("/{id}", h.ServeAdminGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(authz.RequireScope(authz.ScopeContentWrite))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
