package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/store/memory"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoadConfig_ProfileFromEnv(t *testing.T) {
	t.Setenv("APP_PROFILE", "test")

	cfg, err := loadConfig(&globalFlags{configDir: "../../configs"})
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
}

func TestLoadConfig_FlagWinsOverEnv(t *testing.T) {
	t.Setenv("APP_PROFILE", "prod")

	cfg, err := loadConfig(&globalFlags{profile: "test", configDir: "../../configs"})
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
}

func TestLoadConfig_MissingProfile(t *testing.T) {
	t.Setenv("APP_PROFILE", "")

	_, err := loadConfig(&globalFlags{configDir: "../../configs"})
	require.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TODO_SERVICE_TEST_VAR=from-file\n"), 0o600))
	t.Setenv("TODO_SERVICE_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("TODO_SERVICE_TEST_VAR"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("TODO_SERVICE_TEST_VAR"))

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")), "missing file is not an error")
	require.NoError(t, loadEnvFile(""))
}

func TestOpenDatabase_Memory(t *testing.T) {
	t.Parallel()

	db, err := openDatabase(t.Context(), config.StoreConfig{Driver: config.DriverMemory}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.IsType(t, &memory.Store{}, db)
	require.NoError(t, migrateUp(t.Context(), db, discardLogger()), "memory store has nothing to migrate")
}

func TestOpenDatabase_SQLiteMigrates(t *testing.T) {
	t.Parallel()

	dsn := "file:" + filepath.Join(t.TempDir(), "todos.db")
	db, err := openDatabase(t.Context(), config.StoreConfig{
		Driver:       config.DriverSQLite,
		DSN:          dsn,
		MaxOpenConns: 1,
	}, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrateUp(t.Context(), db, discardLogger()))

	page, err := db.FindPage(t.Context(), todo.Query{State: todo.StateAll, Limit: todo.DefaultLimit})
	require.NoError(t, err)
	assert.True(t, page.StoreEmpty())
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := openDatabase(t.Context(), config.StoreConfig{Driver: "mysql"}, discardLogger())
	require.Error(t, err)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.NotNil(t, migrate.Flags().Lookup("down"))
	assert.NotNil(t, root.PersistentFlags().Lookup("profile"))
}
