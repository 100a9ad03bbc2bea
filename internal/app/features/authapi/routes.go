// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the authentication endpoints, typically at /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/me", h.ServeMe)

	r.Get("/google", h.ServeGoogleLogin)
	r.Get("/google/callback", h.ServeGoogleCallback)

	return r
}
