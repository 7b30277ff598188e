// Package store is the thin client every repository talks to.
//
// It hides the differences between the supported drivers:
//   - placeholders: queries are written with ? and rebound to $n for Postgres
//   - error codes: Classify maps SQLite and Postgres constraint errors to a Kind
//   - timestamps: ScanTime accepts time.Time or the text forms SQLite returns
//
// Repositories accept a Querier, so *sql.DB, *sql.Tx, a *Client or a sqlmock
// connection can all be passed in.
package store
