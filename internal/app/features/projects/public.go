// internal/app/features/projects/public.go
package projects

import (
	"context"
	"net/http"

	projectstore "github.com/forma-studio/forma/internal/app/store/projects"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/paging"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServePublicList returns a page of published projects. This endpoint
// backs the site's portfolio and must stay up even when the database is
// struggling, so the store degrades through retries to a reduced query
// and finally placeholder data instead of failing.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	items, total, mode, err := h.Store.PublishedPage(ctx, p.Skip(), int64(p.Limit), h.Log)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to load projects", err)
		return
	}
	if mode != projectstore.ModeFull {
		w.Header().Set("X-Degraded", string(mode))
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServePublicGet returns one published project by slug.
func (h *Handler) ServePublicGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	proj, err := h.Store.GetBySlug(ctx, slug, true)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load project", err)
		return
	}

	if ids, err := h.Team.MemberIDsForProject(ctx, proj.ID); err == nil {
		proj.TeamMemberIDs = ids
	}

	httpapi.WriteJSON(w, http.StatusOK, proj)
}
