package auth

import (
	"context"
	"errors"
	"fmt"
)

// Authenticate looks up a user by name and checks the password.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func Authenticate(ctx context.Context, repo UserRepository, creds Credentials) (*User, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	ok, err := VerifyPassword(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}
