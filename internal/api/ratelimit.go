package api

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter hands out one token bucket per client address.
//
// A bucket holds `requests` tokens and refills over `window`, so a client
// may spend its whole allowance at once and then waits for the refill.
type rateLimiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
		window:  window,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// allow reports whether the client identified by key may proceed.
func (rl *rateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.sweep(now)

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep drops buckets idle for a full window. Such a bucket is full again,
// so forgetting it changes nothing for the client. Caller holds rl.mu.
func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, c := range rl.clients {
		if now.Sub(c.lastSeen) >= rl.window {
			delete(rl.clients, key)
		}
	}
	rl.lastSweep = now
}

// tracked returns the number of clients with a live bucket.
func (rl *rateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// retryAfter is the time until one more token is available, in whole seconds.
func (rl *rateLimiter) retryAfter() int {
	perToken := rl.window / time.Duration(rl.burst)
	return int(math.Ceil(perToken.Seconds()))
}

// middleware rejects requests over the limit with a 429 envelope.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
			writeError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the caller by IP. RemoteAddr already holds the
// forwarded address when api.trust_proxy enables chi's RealIP middleware.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// rateLimitMiddlewares builds the API and static-asset limiters from config.
// Disabled limiting yields pass-through middleware.
func (s *Server) rateLimitMiddlewares() (apiLimit, staticLimit func(http.Handler) http.Handler) {
	rl := s.secCfg.RateLimit
	if !rl.Enabled || rl.APIRequests <= 0 || rl.APIWindow <= 0 || rl.StaticRequests <= 0 || rl.StaticWindow <= 0 {
		passthrough := func(next http.Handler) http.Handler { return next }
		return passthrough, passthrough
	}
	return newRateLimiter(rl.APIRequests, rl.APIWindow).middleware,
		newRateLimiter(rl.StaticRequests, rl.StaticWindow).middleware
}
