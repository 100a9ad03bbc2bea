// internal/app/features/media/handler.go
package media

import (
	mediastore "github.com/forma-studio/forma/internal/app/store/media"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single upload at 25 MiB.
const maxUploadBytes = 25 << 20

// Handler owns the media library: multipart uploads into object storage
// plus the asset rows that describe them.
type Handler struct {
	Store   *mediastore.Store
	Storage storage.Store
	Log     *zap.Logger

	// LocalURL is the URL prefix local storage serves under, used to
	// build public URLs for uploaded files. Empty for S3 deployments.
	LocalURL string
}

func NewHandler(db *mongo.Database, store storage.Store, localURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    mediastore.New(db),
		Storage:  store,
		Log:      logger,
		LocalURL: localURL,
	}
}
