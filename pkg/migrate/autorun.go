package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/costlab-backend/pkg/config"
	"github.com/angelmondragon/costlab-backend/pkg/db"
	"github.com/angelmondragon/costlab-backend/pkg/logger"
)

// Bootstrap prepares the schema when a process starts. sqlite stores are
// auto-migrated from the models on every boot; Postgres goes through
// MaybeRunDev.
func Bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.DB.IsSQLite() {
		return MaybeRunDev(ctx, cfg, logg, client)
	}
	if err := client.AutoMigrate(ctx); err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "driver", cfg.DB.Driver), "schema auto-migrated from models")
	return nil
}

// MaybeRunDev applies pending goose migrations when running in dev with
// AUTO_MIGRATE set. Other environments migrate through cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate || cfg.DB.IsSQLite() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "migrations.autorun.start")
	if err := Up(ctx, sqlDB, DefaultDir); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	logg.Info(ctx, "migrations.autorun.complete")
	return nil
}
