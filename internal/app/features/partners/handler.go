// internal/app/features/partners/handler.go
package partners

import (
	partnerstore "github.com/forma-studio/forma/internal/app/store/partners"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin partner endpoints.
type Handler struct {
	Store *partnerstore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: partnerstore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
