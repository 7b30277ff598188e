package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Postgres(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
	notNull := &pgconn.PgError{Code: "23502", Message: "null value in column violates not-null constraint"}

	assert.Equal(t, KindUniqueViolation, Classify(unique))
	assert.Equal(t, KindUniqueViolation, Classify(fmt.Errorf("creating user: %w", unique)))
	assert.Equal(t, KindOther, Classify(notNull))
}

func TestClassify_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "classify.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "CREATE TABLE t (email TEXT NOT NULL UNIQUE)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t (email) VALUES (?)", "a@example.com")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO t (email) VALUES (?)", "a@example.com")
	require.Error(t, err)
	assert.Equal(t, KindUniqueViolation, Classify(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", err)))

	_, err = db.ExecContext(ctx, "INSERT INTO t (email) VALUES (NULL)")
	require.Error(t, err)
	assert.Equal(t, KindOther, Classify(err), "NOT NULL is not a uniqueness violation")
}

func TestClassify_Other(t *testing.T) {
	assert.Equal(t, KindOther, Classify(nil))
	assert.Equal(t, KindOther, Classify(errors.New("connection refused")))
	assert.Equal(t, KindOther, Classify(sql.ErrNoRows))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "unique_violation", KindUniqueViolation.String())
	assert.Equal(t, "other", KindOther.String())
}
