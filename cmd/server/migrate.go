package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations, or roll back the latest with --down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), flags, down)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recently applied migration")
	return cmd
}

func runMigrate(ctx context.Context, flags *globalFlags, down bool) (err error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	db, err := openDatabase(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if !down {
		return migrateUp(ctx, db, logger)
	}

	m, ok := db.(migrator)
	if !ok {
		return fmt.Errorf("store driver %q does not support migrations", cfg.Store.Driver)
	}
	rolledBack, err := m.Rollback(ctx)
	if err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	if !rolledBack {
		logger.Info("no migrations to roll back")
		return nil
	}
	logger.Info("rolled back latest migration", slog.String("driver", cfg.Store.Driver))
	return nil
}
