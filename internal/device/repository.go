package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// Repository defines the interface for device persistence operations.
// This abstraction allows handlers to be tested without a database.
type Repository interface {
	// List retrieves all devices ordered by ID.
	List(ctx context.Context) ([]Device, error)

	// GetByID retrieves a device by its identifier.
	// Returns ErrDeviceNotFound if the device does not exist.
	GetByID(ctx context.Context, id int64) (*Device, error)

	// Create inserts a new device and returns the stored row.
	// Status defaults to StatusOffline.
	Create(ctx context.Context, in Input) (*Device, error)

	// Update overwrites every mutable field of a device.
	// Returns ErrDeviceNotFound if the device does not exist.
	Update(ctx context.Context, id int64, in Input) (*Device, error)

	// Delete removes a device by ID.
	// Returns ErrDeviceNotFound if the device does not exist.
	Delete(ctx context.Context, id int64) error

	// SetStatus updates only the status of a device.
	// This is used by telemetry ingestion.
	SetStatus(ctx context.Context, id int64, status string) (*Device, error)
}

// deviceColumns is the column list shared by every query that returns rows.
const deviceColumns = `id, name, type, status, location, created_at, updated_at`

// SQLRepository implements Repository on SQLite or Postgres.
type SQLRepository struct {
	db store.Querier
}

// NewSQLRepository creates a new SQL-backed repository.
// The db parameter should be a *store.Client so placeholders match the dialect.
func NewSQLRepository(db store.Querier) *SQLRepository {
	return &SQLRepository{db: db}
}

// List retrieves all devices.
func (r *SQLRepository) List(ctx context.Context) ([]Device, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	devices := make([]Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device: %w", err)
		}
		devices = append(devices, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating devices: %w", err)
	}
	return devices, nil
}

// GetByID retrieves a device by its identifier.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*Device, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = ?`, id)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("querying device by id: %w", err)
	}
	return d, nil
}

// Create inserts a new device.
func (r *SQLRepository) Create(ctx context.Context, in Input) (*Device, error) {
	in = in.withDefaults()
	now := store.Now()

	query := `
		INSERT INTO devices (name, type, status, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING ` + deviceColumns

	row := r.db.QueryRowContext(ctx, query, in.Name, in.Type, in.Status, in.Location, now, now)
	d, err := scanDevice(row)
	if err != nil {
		return nil, fmt.Errorf("inserting device: %w", err)
	}
	return d, nil
}

// Update overwrites name, type, status and location in one statement.
// Absent fields are written as NULL.
func (r *SQLRepository) Update(ctx context.Context, id int64, in Input) (*Device, error) {
	query := `
		UPDATE devices
		SET name = ?, type = ?, status = ?, location = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + deviceColumns

	row := r.db.QueryRowContext(ctx, query, in.Name, in.Type, in.Status, in.Location, store.Now(), id)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("updating device: %w", err)
	}
	return d, nil
}

// Delete removes a device by ID.
func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

// SetStatus updates the status and updated_at of a device.
func (r *SQLRepository) SetStatus(ctx context.Context, id int64, status string) (*Device, error) {
	query := `
		UPDATE devices SET status = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + deviceColumns

	row := r.db.QueryRowContext(ctx, query, status, store.Now(), id)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeviceNotFound
		}
		return nil, fmt.Errorf("updating device status: %w", err)
	}
	return d, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDevice(s scanner) (*Device, error) {
	var d Device
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Type,
		&d.Status,
		&d.Location,
		store.ScanTime(&d.CreatedAt),
		store.ScanTime(&d.UpdatedAt),
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
