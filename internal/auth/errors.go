package auth

import (
	"errors"
	"fmt"

	"github.com/nerrad567/homehub-core/internal/store"
)

// Domain errors for the auth package.
var (
	// ErrUserNotFound is returned when a user ID or username does not exist.
	ErrUserNotFound = fmt.Errorf("auth: user %w", store.ErrNotFound)

	// ErrUserExists is returned when the username or email is already taken.
	ErrUserExists = fmt.Errorf("auth: user %w", store.ErrConflict)

	// ErrInvalidCredentials is returned when login fails for any reason
	// attributable to the caller. It does not reveal which part was wrong.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrTokenInvalid is returned when a JWT fails validation.
	ErrTokenInvalid = errors.New("auth: invalid token")
)
