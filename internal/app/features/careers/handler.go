// internal/app/features/careers/handler.go
package careers

import (
	careerstore "github.com/forma-studio/forma/internal/app/store/careers"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin job opening endpoints.
type Handler struct {
	Store *careerstore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: careerstore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
