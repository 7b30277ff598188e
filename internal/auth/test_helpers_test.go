package auth

import (
	"context"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/nerrad567/homehub-core/internal/infrastructure/database"
	"github.com/nerrad567/homehub-core/internal/store"
	"github.com/nerrad567/homehub-core/migrations"
)

// testCost keeps bcrypt fast in tests.
const testCost = bcrypt.MinCost

// testRepo creates a temporary SQLite database with the schema applied.
// The database file is cleaned up when the test completes.
func testRepo(t *testing.T) *SQLUserRepository {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Driver:      database.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "auth-test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if err := db.Migrate(ctx, migrations.FS); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}

	return NewUserRepository(store.New(db, store.DialectSQLite))
}

// seedTestUser inserts a test user with password "test-password" and returns it.
func seedTestUser(t *testing.T, repo *SQLUserRepository, username, email string) *User {
	t.Helper()

	hash, err := HashPassword("test-password", testCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}

	user, err := repo.Create(t.Context(), username, email, hash)
	if err != nil {
		t.Fatalf("creating test user %s: %v", username, err)
	}
	return user
}
