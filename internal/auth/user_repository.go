package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	// Create inserts a user and returns the stored row.
	// Returns ErrUserExists if the username or email is taken.
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByUsername includes the password hash, for login.
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Count(ctx context.Context) (int, error)
}

// SQLUserRepository implements UserRepository on SQLite or Postgres.
type SQLUserRepository struct {
	db store.Querier
}

// NewUserRepository creates a new SQL-backed user repository.
func NewUserRepository(db store.Querier) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

// Create inserts a new user account.
//
// The insert carries ON CONFLICT DO NOTHING, so a duplicate username or
// email yields no returned row instead of a failed statement. Concurrent
// creators of the same identity therefore see exactly one success.
func (r *SQLUserRepository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
		RETURNING id, username, email, created_at`

	var u User
	err := r.db.QueryRowContext(ctx, query, username, email, passwordHash, store.Now()).
		Scan(&u.ID, &u.Username, &u.Email, store.ScanTime(&u.CreatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || store.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by their ID. The password hash is not loaded.
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, store.ScanTime(&u.CreatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return &u, nil
}

// GetByUsername retrieves a user, including the password hash.
func (r *SQLUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, store.ScanTime(&u.CreatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by username: %w", err)
	}
	return &u, nil
}

// List returns all users ordered by ID, without password hashes.
func (r *SQLUserRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, email, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, store.ScanTime(&u.CreatedAt)); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Count returns the total number of user accounts.
func (r *SQLUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
