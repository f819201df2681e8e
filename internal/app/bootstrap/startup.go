// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// Huddle has no caches to warm; it just records the effective policy so
// operators can see which mode a deployment runs in.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("huddle starting",
		zap.String("database", appCfg.MongoDatabase),
		zap.Bool("single_vote", appCfg.SingleVote))
	return nil
}
