package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/rflink-backend/pkg/config"
	"github.com/angelmondragon/rflink-backend/pkg/db"
	"github.com/angelmondragon/rflink-backend/pkg/logger"
)

// shouldAutoRun is true for dev with RFLINK_AUTO_MIGRATE, and always for the
// local SQLite catalog, which starts empty.
func shouldAutoRun(cfg *config.Config) bool {
	if cfg.FeatureFlags.UseSQLite {
		return true
	}
	return cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
}

// MaybeRunDev applies pending catalog migrations at api startup when shouldAutoRun allows it.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !shouldAutoRun(cfg) {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	dialect := Dialect(client.Driver())
	ctx = logg.WithFields(ctx, map[string]any{"dir": DefaultDir, "dialect": dialect})
	logg.Info(ctx, "applying catalog migrations at startup")

	if err := Run(ctx, sqlDB, dialect, DefaultDir, "up"); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logg.Info(ctx, "catalog migrations applied")
	return nil
}
