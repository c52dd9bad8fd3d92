package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarefahub-io/tarefahub/internal/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	return cfg
}

func TestOpenRunsMigrations(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"usuarios", "tarefas", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, "sqlite"))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(GetMigrations("sqlite")), count)
	db.Close()

	// Reopening the same file must not fail or reapply anything.
	db, err = Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, len(GetMigrations("sqlite")), count)
}

func TestOpen_UnsupportedType(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.Type = "oracle"

	_, err := Open(cfg)
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	tests := []struct {
		dbType string
		in     string
		out    string
	}{
		{"sqlite", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{"postgres", "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"postgres", "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, Rebind(tt.dbType, tt.in))
	}
}
