package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jsamuelsen11/todo-service/internal/adapters/store/migrate"
	"github.com/jsamuelsen11/todo-service/internal/adapters/store/postgres/migrations"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER     PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate applies every pending migration, each in its own transaction, and
// returns the number applied.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	all, applied, err := s.migrationState(ctx)
	if err != nil {
		return 0, err
	}

	pending := migrate.Pending(all, applied)
	for _, m := range pending {
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Up); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("applying migration %s: %w", m.Name, err)
		}
	}

	return len(pending), nil
}

// Rollback reverts the most recently applied migration. It reports false
// when nothing was applied.
func (s *Store) Rollback(ctx context.Context) (bool, error) {
	all, applied, err := s.migrationState(ctx)
	if err != nil {
		return false, err
	}

	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if !applied[m.Version] {
			continue
		}
		err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.Down); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version)
			return err
		})
		if err != nil {
			return false, fmt.Errorf("reverting migration %s: %w", m.Name, err)
		}
		return true, nil
	}

	return false, nil
}

func (s *Store) migrationState(ctx context.Context) ([]migrate.Migration, map[int]bool, error) {
	if _, err := s.pool.Exec(ctx, createMigrationsTable); err != nil {
		return nil, nil, fmt.Errorf("creating schema_migrations: %w", err)
	}

	all, err := migrate.Load(migrations.FS)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, nil, fmt.Errorf("reading applied migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, nil, fmt.Errorf("reading applied migrations: %w", err)
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}

	return all, applied, nil
}
