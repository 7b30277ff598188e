package setting

import (
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// ErrSettingNotFound is returned when a key does not exist.
var ErrSettingNotFound = fmt.Errorf("setting: %w", store.ErrNotFound)
