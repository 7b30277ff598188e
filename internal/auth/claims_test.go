package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	user := &User{ID: 42, Username: "admin"}
	secret := "test-secret-key-for-jwt-signing-32b"

	token, err := GenerateAccessToken(user, secret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Errorf("UserID() = %d, %v, want 42", id, err)
	}
	if claims.Username != "admin" {
		t.Errorf("Username = %q, want admin", claims.Username)
	}
	if claims.ID == "" {
		t.Error("JTI (ID) should not be empty")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 14*time.Minute || remaining > 15*time.Minute {
		t.Errorf("token expires in %v, want ~15m", remaining)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(&User{ID: 1}, "correct-secret", 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	_, err = ParseToken(token, "wrong-secret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := ParseToken(token, "secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("ParseToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, tok := range []string{"", "abc.def", "not-a-valid-jwt"} {
		if _, err := ParseToken(tok, "secret"); err == nil {
			t.Errorf("ParseToken(%q) should fail", tok)
		}
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := ParseToken(token, "secret"); err == nil {
		t.Error("ParseToken() should reject alg=none")
	}
}

func TestGenerateAccessToken_DefaultTTL(t *testing.T) {
	token, err := GenerateAccessToken(&User{ID: 1}, "secret", 0)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 59*time.Minute {
		t.Errorf("default TTL gave %v, want ~%dm", remaining, defaultTokenTTLMinutes)
	}
}

func TestTokenTTLMinutes(t *testing.T) {
	tests := []struct {
		configured int
		want       int
	}{
		{configured: 0, want: defaultTokenTTLMinutes},
		{configured: -5, want: defaultTokenTTLMinutes},
		{configured: 15, want: 15},
	}
	for _, tt := range tests {
		if got := TokenTTLMinutes(tt.configured); got != tt.want {
			t.Errorf("TokenTTLMinutes(%d) = %d, want %d", tt.configured, got, tt.want)
		}
	}
}
