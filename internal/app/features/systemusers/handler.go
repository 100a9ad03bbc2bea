// internal/app/features/systemusers/handler.go
package systemusers

import (
	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler manages admin accounts for the panel. Every route requires
// the users:manage scope, which only superadmins and admins hold.
type Handler struct {
	Store *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store: userstore.New(db),
		Log:   logger,
	}
}
