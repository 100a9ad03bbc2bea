// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/forma-studio/forma/internal/app/system/indexes"
	"github.com/forma-studio/forma/internal/app/system/migrations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by all stores.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		FormaMongoClient:   client,
		FormaMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema reconciles indexes and runs one-shot data migrations.
//
// Index reconciliation is idempotent and fails fast so a bad unique
// index (e.g. duplicate slugs already present) is visible at startup
// rather than as mystery 409s later. The array migration rewrites
// legacy JSON-string list fields to native BSON arrays; see the
// migrations package for why that dual format ever existed.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := migrations.EnsureNativeArrays(ctx, deps.FormaMongoDatabase, logger); err != nil {
		return err
	}
	return indexes.EnsureAll(ctx, deps.FormaMongoDatabase)
}
