package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/jsamuelsen11/todo-service/internal/adapters/store/memory"
	"github.com/jsamuelsen11/todo-service/internal/adapters/store/postgres"
	"github.com/jsamuelsen11/todo-service/internal/adapters/store/sqlite"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// migrator is implemented by the SQL stores.
type migrator interface {
	Migrate(ctx context.Context) (int, error)
	Rollback(ctx context.Context) (bool, error)
}

// openDatabase opens the store selected by cfg.Driver. Migrations are not
// applied here.
func openDatabase(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (ports.TodoDatabase, error) {
	logger.Info("opening todo store",
		slog.String("driver", cfg.Driver),
		slog.String("target", logging.RedactDSN(cfg.DSN)),
	)

	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN, sqlite.Options{MaxOpenConns: cfg.MaxOpenConns})
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN, postgres.Options{MaxConns: int32(min(cfg.MaxOpenConns, math.MaxInt32))})
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// migrateUp applies pending migrations when db supports them.
func migrateUp(ctx context.Context, db ports.TodoDatabase, logger *slog.Logger) error {
	m, ok := db.(migrator)
	if !ok {
		logger.Info("store has no schema to migrate")
		return nil
	}
	n, err := m.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	logger.Info("migrations applied", slog.Int("count", n))
	return nil
}
