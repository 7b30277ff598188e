// Package database provides relational store connectivity for HomeHub Core.
//
// This package manages:
//   - SQLite connections (mattn/go-sqlite3) with WAL mode and busy timeout
//   - Postgres connections (pgx stdlib driver) with a bounded pool
//   - Schema migrations through goose, one embedded directory per driver
//   - Health checks and lifecycle management
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - SQLite database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Driver: "sqlite", Path: "./data/homehub.db"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx, migrations.FS); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration Strategy:
//
// Migrations are additive-only: new columns must be NULLABLE or have DEFAULT
// values, and every change is written twice (sqlite/ and postgres/).
package database
