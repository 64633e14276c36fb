package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/highlightagent/highlight-agent/internal/config"
	"github.com/highlightagent/highlight-agent/internal/store"
	"github.com/highlightagent/highlight-agent/internal/store/postgres"
	"github.com/highlightagent/highlight-agent/internal/store/sqlite"
)

// NewStore opens the configured storage backend and ensures its schema.
// The driver follows BUILD_TARGET unless DB_DRIVER overrides it.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres open: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		log.Info().Msg("postgres store ready")
		return postgres.NewWithDB(db), nil
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite open: %w", err)
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return sqlite.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}
