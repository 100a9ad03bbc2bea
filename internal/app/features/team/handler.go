// internal/app/features/team/handler.go
package team

import (
	projectteamstore "github.com/forma-studio/forma/internal/app/store/projectteam"
	teamstore "github.com/forma-studio/forma/internal/app/store/team"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin team member endpoints.
type Handler struct {
	Store *teamstore.Store
	Links *projectteamstore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: teamstore.New(db),
		Links: projectteamstore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
