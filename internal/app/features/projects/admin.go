// internal/app/features/projects/admin.go
package projects

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	projectstore "github.com/forma-studio/forma/internal/app/store/projects"
	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"github.com/forma-studio/forma/internal/app/system/htmlsanitize"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/paging"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ServeAdminList returns a page of projects regardless of status.
// Supports ?status= and ?q= (case-insensitive title prefix) filters.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if s := query.Get(r, "status"); s != "" {
		filter["status"] = s
	}
	if q := strings.TrimSpace(query.Get(r, "q")); q != "" {
		filter["title_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "sort_order", Value: 1}, {Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	items, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list projects", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count projects", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(items, p.Envelope(total)))
}

// ServeAdminGet returns one project by ID, including its team links.
func (h *Handler) ServeAdminGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	proj, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load project", err)
		return
	}

	if ids, terr := h.Team.MemberIDsForProject(ctx, proj.ID); terr == nil {
		proj.TeamMemberIDs = ids
	}

	httpapi.WriteJSON(w, http.StatusOK, proj)
}

// HandleCreate creates a project. The slug is derived from the title
// when absent; a duplicate slug is a 409 whose body the admin panel
// surfaces verbatim.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Project
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

	req.Description = htmlsanitize.Sanitize(req.Description)
	if role, name, uid, ok := authz.UserCtx(r); ok && role != "" {
		req.CreatedByID = &uid
		req.CreatedByName = name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, req)
	if err != nil {
		h.writeStoreError(w, err, "failed to create project")
		return
	}

	// Secondary write: materialize team links after the primary insert.
	// A failure here is logged but does not undo the create.
	created.TeamMemberIDs = req.TeamMemberIDs
	if len(req.TeamMemberIDs) > 0 {
		if err := h.Team.SetProjectTeam(ctx, created.ID, req.TeamMemberIDs); err != nil {
			h.Log.Error("project team fan-out failed",
				zap.String("project_id", created.ID.Hex()), zap.Error(err))
		}
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "projects",
		Op:     changefeed.OpCreated,
		ID:     created.ID.Hex(),
		Slug:   created.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate applies a partial or full update to a project.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req models.Project
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Description = htmlsanitize.Sanitize(req.Description)
	if role, name, uid, ok := authz.UserCtx(r); ok && role != "" {
		req.UpdatedByID = &uid
		req.UpdatedByName = name
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "project not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load project", err)
		return
	}

	if err := h.Store.Update(ctx, id, req); err != nil {
		h.writeStoreError(w, err, "failed to update project")
		return
	}

	if req.TeamMemberIDs != nil {
		if err := h.Team.SetProjectTeam(ctx, id, req.TeamMemberIDs); err != nil {
			h.Log.Error("project team fan-out failed", zap.String("project_id", id.Hex()), zap.Error(err))
		}
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to reload project", err)
		return
	}
	if ids, terr := h.Team.MemberIDsForProject(ctx, id); terr == nil {
		updated.TeamMemberIDs = ids
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "projects",
		Op:     changefeed.OpUpdated,
		ID:     updated.ID.Hex(),
		Slug:   updated.Slug,
		At:     time.Now().UTC(),
	})

	httpapi.WriteJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a project and its team links.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete project", err)
		return
	}
	if count == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	if err := h.Team.DeleteForProject(ctx, id); err != nil {
		h.Log.Error("project team cleanup failed", zap.String("project_id", id.Hex()), zap.Error(err))
	}

	h.Feed.Publish(changefeed.Event{
		Entity: "projects",
		Op:     changefeed.OpDeleted,
		ID:     id.Hex(),
		At:     time.Now().UTC(),
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if err == projectstore.ErrDuplicateSlug {
		httpapi.WriteError(w, http.StatusConflict, err.Error())
		return
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 0 {
		// Store-side validation failure, not a server fault.
		httpapi.WriteError(w, http.StatusBadRequest, ce.Message)
		return
	}
	httpapi.WriteServerError(w, h.Log, msg, err)
}
