// Package migrations embeds the schema for both record stores and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Drivers understood by Up.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var dialects = map[string]goose.Dialect{
	Postgres: goose.DialectPostgres,
	SQLite:   goose.DialectSQLite3,
}

// Up applies pending migrations and returns how many ran.
func Up(ctx context.Context, db *sql.DB, driver string) (int, error) {
	p, err := provider(db, driver)
	if err != nil {
		return 0, err
	}
	res, err := p.Up(ctx)
	if err != nil {
		return len(res), fmt.Errorf("migrate %s: %w", driver, err)
	}
	return len(res), nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	p, err := provider(db, driver)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

func provider(db *sql.DB, driver string) (*goose.Provider, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("migrate: unknown driver %q", driver)
	}
	sub, err := fs.Sub(files, driver)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}
