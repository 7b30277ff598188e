package setting

import (
	"context"
	"fmt"
)

// Defaults are the settings written on first boot when seeding is enabled.
var Defaults = []struct {
	Key, Value, Description string
}{
	{"app_name", "HomeHub", "Application name"},
	{"version", "1.0.0", "Application version"},
	{"maintenance_mode", "false", "Maintenance mode flag"},
	{"max_devices", "100", "Maximum number of devices per user"},
	{"timezone", "UTC", "Default timezone"},
}

// Seed upserts the default settings.
func Seed(ctx context.Context, repo Repository) error {
	for _, d := range Defaults {
		value, desc := d.Value, d.Description
		if _, err := repo.Upsert(ctx, d.Key, Input{Value: &value, Description: &desc}); err != nil {
			return fmt.Errorf("seeding setting %s: %w", d.Key, err)
		}
	}
	return nil
}
