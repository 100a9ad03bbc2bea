// internal/app/features/explore/handler.go
package explore

import (
	articlestore "github.com/forma-studio/forma/internal/app/store/articles"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin article (journal) endpoints.
type Handler struct {
	Store *articlestore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: articlestore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
