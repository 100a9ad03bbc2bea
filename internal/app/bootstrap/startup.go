// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	oauthstatestore "github.com/forma-studio/forma/internal/app/store/oauthstate"
	userstore "github.com/forma-studio/forma/internal/app/store/users"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"github.com/forma-studio/forma/internal/app/system/workers"
	"go.uber.org/zap"
)

// stateCleanup is started in Startup and stopped in Shutdown.
var stateCleanup *workers.StateCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Forma starts the change feed consumer loop here and makes sure the
// configured superadmin account exists, so a fresh deployment always has
// at least one account that can manage users.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	changefeed.Init(appCfg.FeedBuffer, logger)

	if appCfg.SuperAdminEmail != "" {
		users := userstore.New(deps.FormaMongoDatabase)
		if err := users.EnsureSuperAdmin(ctx, appCfg.SuperAdminEmail); err != nil {
			logger.Error("superadmin bootstrap failed",
				zap.String("email", appCfg.SuperAdminEmail),
				zap.Error(err))
			return err
		}
		logger.Info("superadmin ensured", zap.String("email", appCfg.SuperAdminEmail))
	}

	stateCleanup = workers.NewStateCleanup(
		oauthstatestore.New(deps.FormaMongoDatabase), logger, 15*time.Minute)
	stateCleanup.Start()

	return nil
}
