// Package main is the entry point for the todo service. The serve command
// wires all dependencies using samber/do v2, starts the HTTP server, and
// handles graceful shutdown on SIGINT/SIGTERM. The migrate command applies or
// rolls back database schema migrations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	profile   string
	configDir string
	envFile   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "todo-service",
		Short:         "REST service for managing todo items",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(flags.envFile)
		},
		// Running the bare binary starts the server.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.profile, "profile", "",
		"configuration profile (local, dev, prod, test); defaults to $APP_PROFILE")
	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "configs",
		"directory containing base.yaml and profile files")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env",
		"dotenv file loaded into the environment if present")

	root.AddCommand(newServeCmd(flags), newMigrateCmd(flags))
	return root
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// loadConfig resolves the profile from the flag or APP_PROFILE and loads the
// layered configuration.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	profile := flags.profile
	if profile == "" {
		profile = os.Getenv("APP_PROFILE")
	}
	if profile == "" {
		return nil, errors.New("profile is required: pass --profile or set APP_PROFILE (e.g. local, dev, prod)")
	}

	cfg, err := config.Load(profile, config.WithConfigDir(flags.configDir))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
