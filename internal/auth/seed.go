package auth

import (
	"context"
	"fmt"
	"log/slog"
)

// sampleUsers are created on first boot when seeding is enabled.
var sampleUsers = []NewUser{
	{Username: "admin", Email: "admin@homehub.local", Password: "admin123"},
	{Username: "testuser", Email: "test@homehub.local", Password: "test123"},
}

// SeedUsers creates the sample accounts if no users exist.
// Returns true when the accounts were created, false if seeding was skipped.
func SeedUsers(ctx context.Context, userRepo UserRepository, cost int, logger *slog.Logger) (bool, error) {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("checking user count: %w", err)
	}

	if count > 0 {
		logger.Info("users exist, skipping seed")
		return false, nil
	}

	for _, u := range sampleUsers {
		hash, err := HashPassword(u.Password, cost)
		if err != nil {
			return false, fmt.Errorf("hashing seed password: %w", err)
		}
		if _, err := userRepo.Create(ctx, u.Username, u.Email, hash); err != nil {
			return false, fmt.Errorf("creating seed user %s: %w", u.Username, err)
		}
	}

	logger.Warn("sample user accounts created",
		"users", len(sampleUsers),
		"action_required", "change the sample passwords before exposing the service",
	)
	return true, nil
}
