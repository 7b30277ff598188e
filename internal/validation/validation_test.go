package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestCheck_Passes(t *testing.T) {
	err := Check(
		Field{Name: "username", Value: "alice", Rules: []Rule{Required(), Length(3, 100)}},
		Field{Name: "email", Value: "alice@example.com", Rules: []Rule{Required(), Email()}},
		Field{Name: "password", Value: "secret1", Rules: []Rule{Required(), MinLength(6)}},
	)
	if err != nil {
		t.Fatalf("Check() error = %v, want nil", err)
	}
}

func TestCheck_CollectsViolationsInOrder(t *testing.T) {
	err := Check(
		Field{Name: "username", Value: "ab", Rules: []Rule{Required(), Length(3, 100)}},
		Field{Name: "email", Value: "not-an-email", Rules: []Rule{Required(), Email()}},
		Field{Name: "password", Value: "123", Rules: []Rule{Required(), MinLength(6)}},
	)

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Check() error = %v, want validation.Errors", err)
	}
	if len(verrs) != 3 {
		t.Fatalf("len(violations) = %d, want 3: %v", len(verrs), verrs)
	}

	wantFields := []string{"username", "email", "password"}
	for i, f := range wantFields {
		if verrs[i].Field != f {
			t.Errorf("violation[%d].Field = %q, want %q", i, verrs[i].Field, f)
		}
	}
	if !strings.Contains(verrs[0].Message, "between 3 and 100") {
		t.Errorf("username message = %q, want length message", verrs[0].Message)
	}
}

func TestCheck_StopsAtFirstFailedRulePerField(t *testing.T) {
	err := Check(Field{Name: "username", Value: "", Rules: []Rule{Required(), Length(3, 100)}})

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("Check() error = %v, want validation.Errors", err)
	}
	if len(verrs) != 1 || verrs[0].Message != "is required" {
		t.Errorf("violations = %v, want single required violation", verrs)
	}
}

func TestLength_CountsRunes(t *testing.T) {
	rule := Length(3, 5)

	tests := []struct {
		value string
		ok    bool
	}{
		{"abc", true},
		{"ééé", true},
		{"ab", false},
		{"abcdef", false},
		{"日本語です", true},
	}

	for _, tt := range tests {
		if got := rule(tt.value) == ""; got != tt.ok {
			t.Errorf("Length(3,5)(%q) ok = %v, want %v", tt.value, got, tt.ok)
		}
	}
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@localhost", false},
		{"user@.com", false},
		{"user@example.", false},
		{"Bob <bob@example.com>", false},
		{"two@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsEmail(tt.value); got != tt.want {
				t.Errorf("IsEmail(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail() = %q, want alice@example.com", got)
	}
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{{Field: "username", Message: "is required"}}
	if got := errs.Error(); got != "validation failed: username: is required" {
		t.Errorf("Error() = %q", got)
	}
	if !errs.Has("username") || errs.Has("email") {
		t.Error("Has() mismatch")
	}
}
