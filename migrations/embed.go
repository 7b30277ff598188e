// Package migrations embeds the goose SQL migrations into the binary.
//
// Migrations are kept per driver: sqlite/ for the default embedded store and
// postgres/ for deployments on a shared Postgres server. Both directories must
// describe the same schema.
package migrations

import "embed"

// FS holds the sqlite/ and postgres/ migration directories.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
