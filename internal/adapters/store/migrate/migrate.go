// Package migrate loads versioned SQL migrations from an embedded
// filesystem. Files are named NNNNNN_description.up.sql with a matching
// .down.sql; the store adapters apply them in their own dialect.
package migrate

import (
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Migration is one schema version.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Load reads every *.up.sql file at the root of fsys together with its
// .down.sql counterpart and returns them sorted by version.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, upSuffix) {
			continue
		}

		version, err := parseVersion(name)
		if err != nil {
			return nil, err
		}

		up, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		downName := strings.TrimSuffix(name, upSuffix) + downSuffix
		down, err := fs.ReadFile(fsys, downName)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", downName, err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(name, upSuffix),
			Up:      string(up),
			Down:    string(down),
		})
	}

	slices.SortFunc(migrations, func(a, b Migration) int {
		return a.Version - b.Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// Pending returns the migrations whose versions are not in applied, in
// version order.
func Pending(all []Migration, applied map[int]bool) []Migration {
	var out []Migration
	for _, m := range all {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

func parseVersion(filename string) (int, error) {
	prefix, _, ok := strings.Cut(filename, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s: missing version prefix", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("migration %s: invalid version %q", filename, prefix)
	}
	return version, nil
}
