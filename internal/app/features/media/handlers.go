// internal/app/features/media/handlers.go
package media

import (
	"context"
	"net/http"

	"github.com/forma-studio/forma/internal/app/system/authz"
	"github.com/forma-studio/forma/internal/app/system/httpapi"
	"github.com/forma-studio/forma/internal/app/system/paging"
	"github.com/forma-studio/forma/internal/app/system/timeouts"
	"github.com/forma-studio/forma/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/media                                                 |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	assets, err := h.Store.List(ctx, p.Skip(), int64(p.Limit))
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to list media", err)
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to count media", err)
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, httpapi.NewListEnvelope(assets, p.Envelope(total)))
}

/*─────────────────────────────────────────────────────────────────────*
| GET /api/admin/media/{id}                                            |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "media asset not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load media asset", err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, a)
}

/*─────────────────────────────────────────────────────────────────────*
| POST /api/admin/media                                                |
| multipart/form-data with a single "file" part.                       |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteErrorBody(w, http.StatusBadRequest, httpapi.ErrorBody{
			Error:   "file is required",
			Details: "field: file",
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	info, err := uploadFile(ctx, h.Storage, header.Filename, file, header.Size, contentType)
	if err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to store file", err)
		return
	}

	asset := models.MediaAsset{
		Path:        info.Path,
		FileName:    info.FileName,
		Size:        info.Size,
		ContentType: info.ContentType,
	}
	if h.LocalURL != "" {
		asset.URL = h.LocalURL + "/" + info.Path
	}
	if role, name, uid, ok := authz.UserCtx(r); ok && role != "" {
		asset.UploadedByID = &uid
		asset.UploadedByName = name
	}

	created, err := h.Store.Create(ctx, asset)
	if err != nil {
		// The blob is already stored; remove it so a failed row insert
		// does not strand an orphan file.
		if derr := h.Storage.Delete(ctx, info.Path); derr != nil {
			h.Log.Error("orphan cleanup failed",
				zap.String("path", info.Path),
				zap.Error(derr))
		}
		httpapi.WriteServerError(w, h.Log, "failed to record upload", err)
		return
	}

	h.Log.Info("media uploaded",
		zap.String("media_id", created.ID.Hex()),
		zap.String("path", created.Path),
		zap.Int64("size", created.Size))

	httpapi.WriteJSON(w, http.StatusCreated, created)
}

/*─────────────────────────────────────────────────────────────────────*
| DELETE /api/admin/media/{id}                                         |
*─────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpapi.WriteError(w, http.StatusNotFound, "media asset not found")
			return
		}
		httpapi.WriteServerError(w, h.Log, "failed to load media asset", err)
		return
	}

	// Remove the blob first. If that fails we keep the row so the
	// asset stays visible and the delete can be retried.
	if err := h.Storage.Delete(ctx, a.Path); err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete file", err)
		return
	}

	if _, err := h.Store.Delete(ctx, id); err != nil {
		httpapi.WriteServerError(w, h.Log, "failed to delete media asset", err)
		return
	}

	h.Log.Info("media deleted",
		zap.String("media_id", id.Hex()),
		zap.String("path", a.Path))

	w.WriteHeader(http.StatusNoContent)
}
