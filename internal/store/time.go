package store

import (
	"fmt"
	"time"
)

// timestampLayouts are the text forms SQLite hands back for TIMESTAMP columns
// when the driver cannot infer the declared type (e.g. RETURNING clauses).
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

// ScanTime returns a sql.Scanner that writes a timestamp into dst.
//
//	err := row.Scan(&d.ID, store.ScanTime(&d.CreatedAt))
func ScanTime(dst *time.Time) *TimeScanner {
	return &TimeScanner{dst: dst}
}

// TimeScanner decodes time.Time, string and []byte column values.
type TimeScanner struct {
	dst *time.Time
}

// Scan implements sql.Scanner.
func (s *TimeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		*s.dst = time.Time{}
		return nil
	default:
		return fmt.Errorf("store: cannot scan %T into time.Time", src)
	}
}

func (s *TimeScanner) parse(v string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("store: unrecognised timestamp %q", v)
}

// Now returns the current time truncated to microseconds, the precision
// Postgres keeps, so values written and read back compare equal.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
