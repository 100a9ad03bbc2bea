package testutil

import (
	"context"
	"net/http"

	"github.com/forma-studio/forma/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithIdentity attaches a signed-in identity to the request, the way
// the session middleware would after a successful profile load.
func WithIdentity(r *http.Request, id, name, role string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{
		ID:    id,
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	})
}

// WithDegradedIdentity attaches a degraded identity, simulating a valid
// session whose profile lookup failed.
func WithDegradedIdentity(r *http.Request, id string) *http.Request {
	return auth.WithIdentity(r, &auth.Identity{ID: id, Degraded: true})
}
