// Package dbtest opens throwaway SQLite databases for package tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/vinestrading/catalog-service/internal/database"
)

// DSN returns a SQLite DSN for a fresh file under the test's temp dir.
func DSN(t testing.TB) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "catalog.db")
	return "file:" + file + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite"
}

// Open returns a migrated SQLite database that is closed with the test.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.NewDB(context.Background(), &database.Config{
		Driver: "sqlite",
		DSN:    DSN(t),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
