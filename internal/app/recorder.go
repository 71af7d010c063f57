package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DrikC/bulls-and-cows/internal/config"
	"github.com/DrikC/bulls-and-cows/internal/migrate"
	"github.com/DrikC/bulls-and-cows/internal/store"
)

// OpenRecorder opens the results store selected by STORE_BACKEND and, for
// SQL backends, applies migrations when RUN_MIGRATIONS is set.
func OpenRecorder(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Recorder, error) {
	switch cfg.Store.Backend {
	case "none":
		return store.NopRecorder{}, nil

	case "sqlite":
		s, err := store.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.Store.RunMigrations {
			if err := migrate.Up(s.DB(), migrate.DialectSQLite, log); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("migrate sqlite: %w", err)
			}
		}
		return s, nil

	case "postgres":
		if cfg.Store.RunMigrations {
			if err := migrate.UpPostgres(cfg.Postgres.URL, log); err != nil {
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return store.OpenPostgres(ctx, cfg.Postgres.URL)

	case "redis":
		return store.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.StatsTTL)

	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownBackend, cfg.Store.Backend)
	}
}
