package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

const migrationTable = "schema_migrations"

// Tables in drop order; products reference categories.
var tables = []string{"products", "categories", "admins", migrationTable}

// Migrate applies the embedded migrations of the connection's dialect, each
// file at most once. It returns the names of the files it applied.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	dialect, err := DialectOf(db.DriverName())
	if err != nil {
		return nil, err
	}

	root := path.Join("migrations", string(dialect))
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := "CREATE TABLE IF NOT EXISTS " + migrationTable +
		" (name VARCHAR(255) NOT NULL PRIMARY KEY, applied_at BIGINT NOT NULL)"
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return nil, fmt.Errorf("ensure migration table: %w", err)
	}

	var applied []string
	for _, file := range files {
		done, err := isApplied(ctx, db, file)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", file, err)
		}
		if done {
			continue
		}

		content, err := fs.ReadFile(migrationFS, path.Join(root, file))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		err = WithTx(ctx, db, func(tx *sqlx.Tx) error {
			for _, stmt := range SplitStatements(string(content)) {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				tx.Rebind("INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)"),
				file, time.Now().UTC().UnixMilli())
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		applied = append(applied, file)
	}

	return applied, nil
}

// Reset drops every catalog table. Callers run Migrate afterwards to get an
// empty schema back.
func Reset(ctx context.Context, db *sqlx.DB) error {
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// SplitStatements breaks a migration file into single statements. Line
// comments are dropped; statements end with a semicolon.
func SplitStatements(content string) []string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var stmts []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func isApplied(ctx context.Context, db *sqlx.DB, name string) (bool, error) {
	var found int
	err := db.QueryRowxContext(ctx, db.Rebind("SELECT 1 FROM "+migrationTable+" WHERE name = ?"), name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
