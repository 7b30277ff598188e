package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Querier is the subset of database/sql used by repositories.
// *sql.DB, *sql.Tx and *Client all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect identifies the SQL flavour of the underlying connection.
type Dialect string

// Supported dialects. The values match the database driver names in config.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Client wraps a Querier and rewrites placeholders for its dialect.
type Client struct {
	db      Querier
	dialect Dialect
}

// New creates a Client for the given connection and dialect.
func New(db Querier, dialect Dialect) *Client {
	return &Client{db: db, dialect: dialect}
}

// Dialect returns the client's SQL dialect.
func (c *Client) Dialect() Dialect {
	return c.dialect
}

// ExecContext executes a statement that returns no rows.
func (c *Client) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, Rebind(c.dialect, query), args...)
}

// QueryContext executes a query that returns rows.
func (c *Client) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, Rebind(c.dialect, query), args...)
}

// QueryRowContext executes a query that returns at most one row.
func (c *Client) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return c.db.QueryRowContext(ctx, Rebind(c.dialect, query), args...)
}

// Rebind rewrites ? placeholders to $1, $2, ... for Postgres.
// Question marks inside single-quoted literals are left alone.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
