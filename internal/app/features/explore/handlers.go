// internal/app/features/explore/handlers.go
package explore

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	articlestore "github.com/forma-studio/forma/internal/app/store/articles"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"github.com/forma-studio/forma/internal/app/system/htmlsanitize"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/paging"
	"github.com/forma-studio/forma/internal/app/system/status"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServePublicList returns a page of published articles, most recent
// first. Supports ?tag= filtering.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{"status": status.Published}
	if tag := strings.TrimSpace(query.Get(r, "tag")); tag != "" {
		filter["tags"] = tag
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to load articles", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count articles", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServePublicGet returns one published article by slug.
func (h *Handler) ServePublicGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.GetBySlug(ctx, chi.URLParam(r, "slug"), true)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "article not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load article", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, a)
}

// ServeAdminList returns a page of articles regardless of status.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list articles", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count articles", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServeAdminGet returns one article by ID.
func (h *Handler) ServeAdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "article not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load article", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, a)
}

// HandleCreate creates an article.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Article
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		httpapi.WriteErrorBody(w, http.StatusBadRequest, httpapi.ErrorBody{
			Error:   "title is required",
			Details: "field: title",
		})
		return
	}

	req.Body = htmlsanitize.Sanitize(req.Body)
	req.Tags = dropBlank(req.Tags)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, req)
	if err != nil {
		h.writeStoreError(w, err, "failed to create article")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "articles",
		Op:     changefeed.OpCreated,
		ID:     created.ID.Hex(),
		Slug:   created.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate applies a partial or full update to an article.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req models.Article
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Body = htmlsanitize.Sanitize(req.Body)
	if req.Tags != nil {
		req.Tags = dropBlank(req.Tags)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "article not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load article", err)
		return
	}

	if err := h.Store.Update(ctx, id, req); err != nil {
		h.writeStoreError(w, err, "failed to update article")
		return
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to reload article", err)
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "articles",
		Op:     changefeed.OpUpdated,
		ID:     updated.ID.Hex(),
		Slug:   updated.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete removes an article.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete article", err)
		return
	}
	if count == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "article not found")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "articles",
		Op:     changefeed.OpDeleted,
		ID:     id.Hex(),
		At:     time.Now().UTC(),
	})

	w.WriteHeader(http.StatusNoContent)
}

func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if err == articlestore.ErrDuplicateSlug {
		httpapi.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 0 {
		httpapi.WriteError(w, http.StatusBadRequest, ce.Message)
		return
	}
	httpapi.WriteServerError(w, h.Log, msg, err)
}
