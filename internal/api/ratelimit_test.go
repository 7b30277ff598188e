package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nerrad567/homehub-core/internal/infrastructure/config"
)

func TestRateLimiter_AllowsBurstThenRefills(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.allow("a") || !rl.allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("a") {
		t.Error("third request inside the window should be rejected")
	}
	if !rl.allow("b") {
		t.Error("other clients have their own bucket")
	}

	// One token refills every 30s
	now = now.Add(31 * time.Second)
	if !rl.allow("a") {
		t.Error("request after partial refill should be allowed")
	}
	if rl.allow("a") {
		t.Error("only one token should have refilled")
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := newRateLimiter(5, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	rl.allow("b")
	if got := rl.tracked(); got != 2 {
		t.Fatalf("tracked = %d, want 2", got)
	}

	now = now.Add(2 * time.Minute)
	rl.allow("c")
	if got := rl.tracked(); got != 1 {
		t.Errorf("tracked after sweep = %d, want 1", got)
	}
}

func TestRateLimiter_RetryAfter(t *testing.T) {
	if got := newRateLimiter(100, 15*time.Minute).retryAfter(); got != 9 {
		t.Errorf("retryAfter = %d, want 9", got)
	}
	if got := newRateLimiter(60, time.Minute).retryAfter(); got != 1 {
		t.Errorf("retryAfter = %d, want 1", got)
	}
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	if got := clientKey(r); got != "203.0.113.7" {
		t.Errorf("clientKey = %q", got)
	}

	r.RemoteAddr = "no-port"
	if got := clientKey(r); got != "no-port" {
		t.Errorf("clientKey without port = %q", got)
	}
}

func rateLimitedEnv(t *testing.T, trustProxy bool) *testEnv {
	t.Helper()
	return newTestEnv(t, func(d *Deps) {
		d.Config.TrustProxy = trustProxy
		d.Security.RateLimit = config.RateLimitConfig{
			Enabled:        true,
			APIRequests:    3,
			APIWindow:      time.Minute,
			StaticRequests: 2,
			StaticWindow:   time.Minute,
		}
	})
}

func TestRateLimit_API(t *testing.T) {
	env := rateLimitedEnv(t, false)

	for i := range 3 {
		if w := env.do(http.MethodGet, "/api/health", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := env.do(http.MethodGet, "/api/devices", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Success || resp.Error != "Too many requests, please try again later." {
		t.Errorf("envelope = %+v", resp)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("429 should carry Retry-After")
	}

	// Static assets have their own budget
	if w := env.do(http.MethodGet, "/", ""); w.Code != http.StatusOK {
		t.Errorf("static status = %d, want 200", w.Code)
	}
}

func TestRateLimit_Static(t *testing.T) {
	env := rateLimitedEnv(t, false)

	env.do(http.MethodGet, "/", "")
	env.do(http.MethodGet, "/app.js", "")
	if w := env.do(http.MethodGet, "/style.css", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("third static request status = %d, want 429", w.Code)
	}
}

func TestRateLimit_TrustProxyKeysOnForwardedAddress(t *testing.T) {
	env := rateLimitedEnv(t, true)

	for range 3 {
		env.do(http.MethodGet, "/api/health", "", "X-Forwarded-For", "198.51.100.1")
	}
	if w := env.do(http.MethodGet, "/api/health", "", "X-Forwarded-For", "198.51.100.1"); w.Code != http.StatusTooManyRequests {
		t.Errorf("same forwarded client status = %d, want 429", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/health", "", "X-Forwarded-For", "198.51.100.2"); w.Code != http.StatusOK {
		t.Errorf("different forwarded client status = %d, want 200", w.Code)
	}
}
