// Package testutil provides shared test helpers.
package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mkcms/mkcms-go/internal/memstore"
	"github.com/mkcms/mkcms-go/internal/storage"
	"github.com/mkcms/mkcms-go/internal/store"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// DB creates a temporary test database with all migrations applied. It is
// closed automatically when the test finishes.
func DB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// Facade builds a storage facade over an empty in-memory store, optionally
// attaching a migrated temp-file database as the durable tier.
func Facade(t *testing.T, durable bool) *storage.Facade {
	t.Helper()

	f := storage.New(memstore.NewEmpty("main", "en"), storage.Options{Logger: Logger()})
	if durable {
		f.UseDurable(DB(t))
	}
	return f
}
