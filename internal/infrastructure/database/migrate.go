package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

// Each driver keeps its migrations in its own directory of the embedded FS.
const (
	sqliteMigrationsDir   = "sqlite"
	postgresMigrationsDir = "postgres"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseMu guards goose's package-level base FS and dialect.
var gooseMu sync.Mutex

// Migrate applies all pending migrations for the connection's driver.
//
// fsys must contain a "sqlite" and a "postgres" directory of goose SQL files
// (see the migrations package). Applied versions are tracked by goose in
// its goose_db_version table, so calling Migrate repeatedly is safe.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - fsys: Filesystem holding the migration directories
//
// Returns:
//   - error: If the dialect is unknown or a migration fails
func (db *DB) Migrate(ctx context.Context, fsys fs.FS) error {
	dialect, dir, err := gooseTarget(db.driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting migration dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db.DB, dir); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// gooseTarget maps a driver to its goose dialect and migration directory.
func gooseTarget(driver string) (dialect, dir string, err error) {
	switch driver {
	case DriverSQLite:
		return "sqlite3", sqliteMigrationsDir, nil
	case DriverPostgres:
		return "postgres", postgresMigrationsDir, nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}
