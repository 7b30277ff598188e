package device

import (
	"context"
	"fmt"
)

// SampleDevices are inserted on first boot when seeding is enabled.
var SampleDevices = []struct {
	Name, Type, Status, Location string
}{
	{"Living Room Light", "light", "online", "Living Room"},
	{"Bedroom Air Conditioner", "air_conditioner", "offline", "Bedroom"},
	{"Front Door Lock", "smart_lock", "online", "Entrance"},
	{"Kitchen Fridge", "refrigerator", "online", "Kitchen"},
	{"Living Room TV", "tv", "offline", "Living Room"},
}

// Seed inserts the sample devices. It does not check for existing rows;
// callers seed only on an empty database.
func Seed(ctx context.Context, repo Repository) error {
	for _, d := range SampleDevices {
		name, typ, status, location := d.Name, d.Type, d.Status, d.Location
		in := Input{Name: &name, Type: &typ, Status: &status, Location: &location}
		if _, err := repo.Create(ctx, in); err != nil {
			return fmt.Errorf("seeding device %s: %w", d.Name, err)
		}
	}
	return nil
}
