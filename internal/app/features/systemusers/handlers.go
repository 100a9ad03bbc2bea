// internal/app/features/systemusers/handlers.go
package systemusers

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/authz"
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

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/users                                                 |
*─────────────────────────────────────────────────────────────────────*/

// ServeList returns a page of accounts, filterable by ?role= and
// searchable by ?q= against the folded full name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if role := query.Get(r, "role"); role != "" {
		filter["role"] = role
	}
	if q := query.Get(r, "q"); q != "" {
		filter["full_name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(q))}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}}).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))

	users, err := h.Store.Find(ctx, filter, opts)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list users", err)
		return
	}
	total, err := h.Store.Count(ctx, filter)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count users", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(users, p.Envelope(total)))
}

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/users/{id}                                            |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load user", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, u)
}

/*─────────────────────────────────────────────────────────────────────*
| POST /api/admin/users                                                |
*─────────────────────────────────────────────────────────────────────*/

type accountRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`

	// Password is optional; accounts without one can only sign in
	// through Google.
	Password string `json:"password"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, newUserModel(req), req.Password)
	if err != nil {
		h.writeStoreError(w, err, "failed to create user")
		return
	}

	if role, name, uid, ok := authz.UserCtx(r); ok && role != "" {
		h.Log.Info("account created",
			zap.String("user_id", created.ID.Hex()),
			zap.String("email", created.Email),
			zap.String("created_by", name),
			zap.String("created_by_id", uid.Hex()))
	}

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

/*─────────────────────────────────────────────────────────────────────*
| PUT /api/admin/users/{id}                                            |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req accountRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Store.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load user", err)
		return
	}

	upd := userstore.AccountUpdate{
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
	}
	if err := h.Store.Update(ctx, id, upd); err != nil {
		h.writeStoreError(w, err, "failed to update user")
		return
	}

	updated, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to reload user", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, updated)
}

/*─────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/users/{id}                                         |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	// An account cannot delete itself; another admin has to do it.
	if _, _, uid, ok := authz.UserCtx(r); ok && uid == id {
		httpapi.WriteError(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete user", err)
		return
	}
	if count == 0 {
		httpapi.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	h.Log.Info("account deleted", zap.String("user_id", id.Hex()))

	w.WriteHeader(http.StatusNoContent)
}

/*─────────────────────────────────────────────────────────────────────*
| Helpers                                                              |
*─────────────────────────────────────────────────────────────────────*/

func newUserModel(req accountRequest) (u models.User) {
	u.FullName = req.FullName
	u.Email = req.Email
	u.Role = req.Role
	u.Status = req.Status
	return u
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, msg string) {
	if err == userstore.ErrDuplicateEmail {
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
