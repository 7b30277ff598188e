package setting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// Repository defines the interface for settings persistence.
type Repository interface {
	// List returns all settings ordered by key.
	List(ctx context.Context) ([]Setting, error)

	// Get returns one setting. Returns ErrSettingNotFound if the key does not exist.
	Get(ctx context.Context, key string) (*Setting, error)

	// Upsert creates the key or overwrites its value and description.
	Upsert(ctx context.Context, key string, in Input) (*Setting, error)
}

const settingColumns = `key, value, description, updated_at`

// SQLRepository implements Repository on SQLite or Postgres.
type SQLRepository struct {
	db store.Querier
}

// NewSQLRepository creates a new SQL-backed settings repository.
func NewSQLRepository(db store.Querier) *SQLRepository {
	return &SQLRepository{db: db}
}

// List returns all settings ordered by key.
func (r *SQLRepository) List(ctx context.Context) ([]Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	settings := make([]Setting, 0)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}
		settings = append(settings, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return settings, nil
}

// Get returns one setting by key.
func (r *SQLRepository) Get(ctx context.Context, key string) (*Setting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+settingColumns+` FROM settings WHERE key = ?`, key)
	s, err := scanSetting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("querying setting: %w", err)
	}
	return s, nil
}

// Upsert writes the setting in one statement and returns the resulting row.
func (r *SQLRepository) Upsert(ctx context.Context, key string, in Input) (*Setting, error) {
	query := `
		INSERT INTO settings (key, value, description, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			description = excluded.description,
			updated_at = excluded.updated_at
		RETURNING ` + settingColumns

	row := r.db.QueryRowContext(ctx, query, key, in.Value, in.Description, store.Now())
	s, err := scanSetting(row)
	if err != nil {
		return nil, fmt.Errorf("upserting setting: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSetting(s scanner) (*Setting, error) {
	var st Setting
	if err := s.Scan(&st.Key, &st.Value, &st.Description, store.ScanTime(&st.UpdatedAt)); err != nil {
		return nil, err
	}
	return &st, nil
}
