package device

import (
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// Domain errors for the device package.
//
// ErrDeviceNotFound wraps store.ErrNotFound, so callers may match either:
//
//	if errors.Is(err, store.ErrNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when a device ID does not exist.
	ErrDeviceNotFound = fmt.Errorf("device: %w", store.ErrNotFound)
)
