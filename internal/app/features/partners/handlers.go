// internal/app/features/partners/handlers.go
package partners

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	partnerstore "github.com/forma-studio/forma/internal/app/store/partners"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
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

// ServePublicList returns a page of published partners in display order.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := bson.M{"status": status.Published}
	opts := options.Find().
		SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name_ci", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to load partners", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count partners", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServePublicGet returns one published partner by slug.
func (h *Handler) ServePublicGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Store.GetBySlug(ctx, chi.URLParam(r, "slug"), true)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "partner not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load partner", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, p)
}

// ServeAdminList returns a page of partners regardless of status.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "name_ci", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list partners", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count partners", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServeAdminGet returns one partner by ID.
func (h *Handler) ServeAdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "partner not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load partner", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, p)
}

// HandleCreate creates a partner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Partner
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httpapi.WriteErrorBody(w, http.StatusBadRequest, httpapi.ErrorBody{
			Error:   "name is required",
			Details: "field: name",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, req)
	if err != nil {
		h.writeStoreError(w, err, "failed to create partner")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "partners",
		Op:     changefeed.OpCreated,
		ID:     created.ID.Hex(),
		Slug:   created.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate applies a partial or full update to a partner.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	var req models.Partner
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "partner not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load partner", err)
		return
	}

	if err := h.Store.Update(ctx, id, req); err != nil {
		h.writeStoreError(w, err, "failed to update partner")
		return
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to reload partner", err)
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "partners",
		Op:     changefeed.OpUpdated,
		ID:     updated.ID.Hex(),
		Slug:   updated.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a partner.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete partner", err)
		return
	}
	if count == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "partner not found")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "partners",
		Op:     changefeed.OpDeleted,
		ID:     id.Hex(),
		At:     time.Now().UTC(),
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if err == partnerstore.ErrDuplicateSlug {
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
