// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/forma-studio/forma/internal/app/system/changefeed"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if stateCleanup != nil {
		stateCleanup.Stop()
		stateCleanup = nil
	}
	changefeed.Stop()

	if deps.FormaMongoClient != nil {
		logger.Info("disconnecting Forma MongoDB client")
		if err := deps.FormaMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
