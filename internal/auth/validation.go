package auth

import (
	"strings"

	"github.com/nerrad567/homehub-core/internal/validation"
)

// Account field limits.
const (
	minUsernameLength = 3
	maxUsernameLength = 100
	minPasswordLength = 6
)

// ValidateNewUser checks a create-user request and returns it normalised:
// the username trimmed and the email trimmed and lowercased.
//
// On failure the error is a validation.Errors listing every rejected field
// in the order username, email, password.
func ValidateNewUser(in NewUser) (NewUser, error) {
	out := NewUser{
		Username: strings.TrimSpace(in.Username),
		Email:    validation.NormalizeEmail(in.Email),
		Password: in.Password,
	}

	err := validation.Check(
		validation.Field{Name: "username", Value: out.Username, Rules: []validation.Rule{
			validation.Required(),
			validation.Length(minUsernameLength, maxUsernameLength),
		}},
		validation.Field{Name: "email", Value: out.Email, Rules: []validation.Rule{
			validation.Required(),
			validation.Email(),
		}},
		// Passwords are taken verbatim; whitespace counts toward the length.
		validation.Field{Name: "password", Value: out.Password, Rules: []validation.Rule{
			validation.MinLength(minPasswordLength),
		}},
	)
	if err != nil {
		return NewUser{}, err
	}
	return out, nil
}
