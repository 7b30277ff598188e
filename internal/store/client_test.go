package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		in      string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM devices WHERE id = ?", "SELECT * FROM devices WHERE id = ?"},
		{"postgres single", DialectPostgres, "SELECT * FROM devices WHERE id = ?", "SELECT * FROM devices WHERE id = $1"},
		{"postgres many", DialectPostgres, "UPDATE t SET a = ?, b = ? WHERE id = ?", "UPDATE t SET a = $1, b = $2 WHERE id = $3"},
		{"postgres quoted literal", DialectPostgres, "SELECT '?' AS q, x FROM t WHERE y = ?", "SELECT '?' AS q, x FROM t WHERE y = $1"},
		{"postgres no placeholders", DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rebind(tt.dialect, tt.in))
		})
	}
}

func TestClient_RebindsBeforeExecuting(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM devices WHERE id = $1").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT key FROM settings WHERE key = $1").
		WithArgs("app_name").
		WillReturnRows(sqlmock.NewRows([]string{"key"}).AddRow("app_name"))

	c := New(db, DialectPostgres)
	assert.Equal(t, DialectPostgres, c.Dialect())

	_, err = c.ExecContext(context.Background(), "DELETE FROM devices WHERE id = ?", int64(7))
	require.NoError(t, err)

	var key string
	require.NoError(t, c.QueryRowContext(context.Background(), "SELECT key FROM settings WHERE key = ?", "app_name").Scan(&key))
	assert.Equal(t, "app_name", key)

	require.NoError(t, mock.ExpectationsWereMet())
}
