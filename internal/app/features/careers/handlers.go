// internal/app/features/careers/handlers.go
package careers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	careerstore "github.com/forma-studio/forma/internal/app/store/careers"
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

// ServePublicList returns a page of published job openings, newest first.
// Supports ?department= filtering for the careers page tabs.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{"status": status.Published}
	if d := strings.TrimSpace(query.Get(r, "department")); d != "" {
		filter["department"] = d
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to load job openings", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count job openings", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServePublicGet returns one published opening by slug.
func (h *Handler) ServePublicGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	j, err := h.Store.GetBySlug(ctx, chi.URLParam(r, "slug"), true)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "job opening not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load job opening", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, j)
}

// ServeAdminList returns a page of openings regardless of status.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}
	if d := strings.TrimSpace(query.Get(r, "department")); d != "" {
		filter["department"] = d
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list job openings", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count job openings", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServeAdminGet returns one opening by ID.
func (h *Handler) ServeAdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid job opening id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	j, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "job opening not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load job opening", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, j)
}

// HandleCreate creates a job opening. Title and department are required;
// list fields arrive already cleaned of blank rows from the admin form
// but are normalized here too so the API holds the invariant on its own.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.JobOpening
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
	if strings.TrimSpace(req.Department) == "" {
		httpapi.WriteErrorBody(w, http.StatusBadRequest, httpapi.ErrorBody{
			Error:   "department is required",
			Details: "field: department",
		})
		return
	}

	req.Requirements = dropBlank(req.Requirements)
	req.Responsibilities = dropBlank(req.Responsibilities)
	req.Benefits = dropBlank(req.Benefits)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, req)
	if err != nil {
		h.writeStoreError(w, err, "failed to create job opening")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "job_openings",
		Op:     changefeed.OpCreated,
		ID:     created.ID.Hex(),
		Slug:   created.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate applies a partial or full update to a job opening.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid job opening id")
		return
	}

	var req models.JobOpening
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Requirements = dropBlankKeepNil(req.Requirements)
	req.Responsibilities = dropBlankKeepNil(req.Responsibilities)
	req.Benefits = dropBlankKeepNil(req.Benefits)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "job opening not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load job opening", err)
		return
	}

	if err := h.Store.Update(ctx, id, req); err != nil {
		h.writeStoreError(w, err, "failed to update job opening")
		return
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to reload job opening", err)
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "job_openings",
		Op:     changefeed.OpUpdated,
		ID:     updated.ID.Hex(),
		Slug:   updated.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a job opening.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid job opening id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete job opening", err)
		return
	}
	if count == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "job opening not found")
		return
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "job_openings",
		Op:     changefeed.OpDeleted,
		ID:     id.Hex(),
		At:     time.Now().UTC(),
	})

	w.WriteHeader(http.StatusNoContent)
}

// dropBlank strips whitespace-only entries, returning [] for nil input.
func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// dropBlankKeepNil strips blank entries but preserves nil, which on
// update means "leave the stored list untouched".
func dropBlankKeepNil(in []string) []string {
	if in == nil {
		return nil
	}
	return dropBlank(in)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if err == careerstore.ErrDuplicateSlug {
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
