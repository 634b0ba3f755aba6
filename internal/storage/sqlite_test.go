package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codecollab/editor-server/internal/storage"
)

func TestOpen_CreatesSchema(t *testing.T) {
	t.Parallel()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	for _, table := range []string{"users", "projects", "project_access", "files"} {
		var name string

		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	t.Parallel()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	if _, err := db.Exec(
		"INSERT INTO files (project_id, name) VALUES (404, 'orphan.go')",
	); err == nil {
		t.Error("expected a foreign key violation for an orphan file")
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.db")

	first, err := storage.Open(context.Background(), path)
	require.NoError(t, err)

	_, err = first.Exec("INSERT INTO users (name, password_hash) VALUES ('alice', 'x')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := storage.Open(context.Background(), path)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = second.Close()
	})

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))

	if count != 1 {
		t.Errorf("expected existing data to survive reopen, got %d rows", count)
	}
}
