// internal/app/features/dashboard/handler.go
package dashboard

import (
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin dashboard: aggregate content counts and a
// websocket stream of content changes.
type Handler struct {
	DB   *mongo.Database
	Feed *changefeed.Feed
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Feed: feed, Log: logger}
}
