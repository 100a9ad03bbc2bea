// internal/app/bootstrap/storage.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

// buildStorage constructs the media storage backend from app config.
// Local storage is the default; S3 is used for multi-instance deployments
// where uploads must not live on one machine's disk.
func buildStorage(appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		logger.Info("using S3 media storage",
			zap.String("region", appCfg.StorageS3Region),
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("prefix", appCfg.StorageS3Prefix))
		return storage.NewS3(context.Background(), storage.S3Config{
			Region: appCfg.StorageS3Region,
			Bucket: appCfg.StorageS3Bucket,
			Prefix: appCfg.StorageS3Prefix,
		})
	default:
		logger.Info("using local media storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL))
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	}
}
