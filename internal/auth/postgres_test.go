package auth

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/homehub-core/internal/store"
)

func newPostgresUserRepo(t *testing.T) (*SQLUserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserRepository(store.New(db, store.DialectPostgres)), mock
}

func TestPostgres_CreateConflictWithoutRow(t *testing.T) {
	repo, mock := newPostgresUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT DO NOTHING")).
		WithArgs("alice", "alice@example.com", "hash", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Create(context.Background(), "alice", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateUniqueViolation(t *testing.T) {
	repo, mock := newPostgresUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1, $2, $3, $4)")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), "alice", "alice@example.com", "hash")
	assert.ErrorIs(t, err, ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateOtherFailure(t *testing.T) {
	repo, mock := newPostgresUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	_, err := repo.Create(context.Background(), "alice", "alice@example.com", "hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserExists)
	assert.Equal(t, store.KindOther, store.Classify(err))
}
