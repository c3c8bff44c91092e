package migrate_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/store/migrate"
)

func TestLoad_SortsByVersion(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"000002_add_index.up.sql":      {Data: []byte("CREATE INDEX i ON todos (done);")},
		"000002_add_index.down.sql":    {Data: []byte("DROP INDEX i;")},
		"000001_create_todos.up.sql":   {Data: []byte("CREATE TABLE todos (id INTEGER);")},
		"000001_create_todos.down.sql": {Data: []byte("DROP TABLE todos;")},
		"README.md":                    {Data: []byte("ignored")},
	}

	got, err := migrate.Load(fsys)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "000001_create_todos", got[0].Name)
	assert.Equal(t, "CREATE TABLE todos (id INTEGER);", got[0].Up)
	assert.Equal(t, "DROP TABLE todos;", got[0].Down)
	assert.Equal(t, 2, got[1].Version)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "missing down file",
			fsys: fstest.MapFS{
				"000001_create.up.sql": {Data: []byte("x")},
			},
		},
		{
			name: "bad version prefix",
			fsys: fstest.MapFS{
				"abc_create.up.sql":   {Data: []byte("x")},
				"abc_create.down.sql": {Data: []byte("x")},
			},
		},
		{
			name: "duplicate version",
			fsys: fstest.MapFS{
				"000001_a.up.sql":   {Data: []byte("x")},
				"000001_a.down.sql": {Data: []byte("x")},
				"000001_b.up.sql":   {Data: []byte("x")},
				"000001_b.down.sql": {Data: []byte("x")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := migrate.Load(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestPending(t *testing.T) {
	t.Parallel()

	all := []migrate.Migration{{Version: 1}, {Version: 2}, {Version: 3}}

	got := migrate.Pending(all, map[int]bool{1: true, 3: true})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Version)
}
