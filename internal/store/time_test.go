package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)

	tests := []struct {
		name string
		src  any
		want time.Time
	}{
		{"time value", want, want},
		{"non-UTC time value", want.In(time.FixedZone("CET", 3600)), want},
		{"sqlite driver text", "2024-03-01 12:30:45.123456+00:00", want},
		{"rfc3339 bytes", []byte("2024-03-01T12:30:45.123456Z"), want},
		{"plain datetime", "2024-03-01 12:30:45", time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)},
		{"null", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got time.Time
			require.NoError(t, ScanTime(&got).Scan(tt.src))
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestScanTime_Invalid(t *testing.T) {
	var got time.Time
	assert.Error(t, ScanTime(&got).Scan("yesterday"))
	assert.Error(t, ScanTime(&got).Scan(42))
}

func TestNow_MicrosecondPrecision(t *testing.T) {
	now := Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%1000)
}
