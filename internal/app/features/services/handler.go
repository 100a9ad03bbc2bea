// internal/app/features/services/handler.go
package services

import (
	servicestore "github.com/forma-studio/forma/internal/app/store/services"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the public and admin service endpoints.
type Handler struct {
	Store *servicestore.Store
	Feed  *changefeed.Feed
	Log   *zap.Logger
}

// NewHandler constructs a Handler bound to the given database.
func NewHandler(db *mongo.Database, feed *changefeed.Feed, logger *zap.Logger) *Handler {
	return &Handler{
		Store: servicestore.New(db),
		Feed:  feed,
		Log:   logger,
	}
}
