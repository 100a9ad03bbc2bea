// internal/app/features/systemusers/routes.go
package systemusers

import (
	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes mounts the account management routes, typically at
// /api/admin/users. There is no public surface for accounts.
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(authz.RequireScope(authz.ScopeUsersManage))

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
