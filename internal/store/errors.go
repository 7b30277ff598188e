package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Semantic errors wrapped by the entity packages' sentinels.
var (
	// ErrNotFound means no row matched the identifier.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
)

// Kind is the driver-independent classification of a store error.
type Kind int

const (
	// KindOther covers connectivity failures, syntax errors and everything unclassified.
	KindOther Kind = iota

	// KindUniqueViolation means a UNIQUE or PRIMARY KEY constraint rejected the write.
	KindUniqueViolation
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindUniqueViolation:
		return "unique_violation"
	default:
		return "other"
	}
}

// Classify inspects a driver error and returns its Kind.
// Wrapped errors are unwrapped with errors.As.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return KindUniqueViolation
		}
		return KindOther
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return KindUniqueViolation
	}

	return KindOther
}

// IsUniqueViolation reports whether err is a uniqueness constraint violation.
func IsUniqueViolation(err error) bool {
	return Classify(err) == KindUniqueViolation
}
