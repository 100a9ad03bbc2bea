// internal/app/features/projects/handler.go
package projects

import (
	projectstore "github.com/forma-studio/forma/internal/app/store/projects"
	projectteamstore "github.com/forma-studio/forma/internal/app/store/projectteam"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin project endpoints.
//
// It is constructed once at startup in bootstrap with the shared Mongo
// database handle, the change feed, and the logger.
type Handler struct {
	Store *projectstore.Store
	Team  *projectteamstore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: projectstore.New(db),
		Team:  projectteamstore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
