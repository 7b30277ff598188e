package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Violation describes one failed rule for one field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of violations produced by Check.
type Errors []Violation

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any violation concerns field.
func (e Errors) Has(field string) bool {
	for _, v := range e {
		if v.Field == field {
			return true
		}
	}
	return false
}

// Rule checks a value and returns a human-readable message when it fails.
// An empty message means the value passed.
type Rule func(value string) string

// Field pairs a named value with the rules it must satisfy.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Check evaluates every field and returns Errors, or nil when all rules pass.
// Rules for a single field stop at the first failure so a missing value does
// not also report a length problem.
func Check(fields ...Field) error {
	var errs Errors
	for _, f := range fields {
		for _, rule := range f.Rules {
			if msg := rule(f.Value); msg != "" {
				errs = append(errs, Violation{Field: f.Name, Message: msg})
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Required fails on empty or whitespace-only values.
func Required() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "is required"
		}
		return ""
	}
}

// Length fails when the value is not between minLen and maxLen characters.
// Characters are counted as runes.
func Length(minLen, maxLen int) Rule {
	return func(value string) string {
		n := utf8.RuneCountInString(value)
		if n < minLen || n > maxLen {
			return fmt.Sprintf("must be between %d and %d characters", minLen, maxLen)
		}
		return ""
	}
}

// MinLength fails when the value is shorter than minLen characters.
func MinLength(minLen int) Rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) < minLen {
			return fmt.Sprintf("must be at least %d characters", minLen)
		}
		return ""
	}
}

// Email fails unless the value is a single bare address such as
// "user@example.com". Display names ("Bob <bob@example.com>") are rejected.
func Email() Rule {
	return func(value string) string {
		if !IsEmail(value) {
			return "must be a valid email address"
		}
		return ""
	}
}

// IsEmail reports whether value is a bare, syntactically valid address with
// a dotted domain.
func IsEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(value, '@')
	if at <= 0 {
		return false
	}
	domain := value[at+1:]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}

// NormalizeEmail trims surrounding space and lowercases the address so that
// equal mailboxes compare equal in the store.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
