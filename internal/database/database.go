// Package database opens the catalog database for one of the supported
// drivers and provides the transaction and constraint helpers the
// repositories share.
package database

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"modernc.org/sqlite"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite"
)

func init() {
	// sqlx does not know the modernc driver name.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	// SQLite's built-in LOWER folds ASCII only; searches fold with Unicode
	// rules like the postgres and mysql collations do.
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DialectOf maps a database/sql driver name onto its SQL dialect.
func DialectOf(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	case "sqlite":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

func NewDB(ctx context.Context, cfg *Config) (*sqlx.DB, error) {
	if _, err := DialectOf(cfg.Driver); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// InsertReturningID runs an INSERT written with ? placeholders and returns
// the generated id. MySQL has no RETURNING clause, so it reads LastInsertId.
func InsertReturningID(ctx context.Context, e sqlx.ExtContext, query string, args ...any) (int64, error) {
	if e.DriverName() == "mysql" {
		res, err := e.ExecContext(ctx, e.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	if err := sqlx.GetContext(ctx, e, &id, e.Rebind(query+" RETURNING id"), args...); err != nil {
		return 0, err
	}
	return id, nil
}

// Now is the creation timestamp stored by every insert.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
