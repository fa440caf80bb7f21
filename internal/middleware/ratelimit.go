package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused per-client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

// RateLimiter throttles requests per client IP. Wire it after
// chimiddleware.RealIP so proxied requests are keyed on the original caller.
// Client-supplied headers such as X-User-ID are not used: a caller could
// rotate them to get a fresh bucket on every request.
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	clients   map[string]*clientLimiter
	lastSweep time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps requests per second per client with a burst of
// the same size (at least 1). A non-positive rps disables limiting.
func NewRateLimiter(rps float64) *RateLimiter {
	rl := &RateLimiter{
		limit:   rate.Inf,
		burst:   1,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
	if rps > 0 {
		rl.limit = rate.Limit(rps)
		rl.burst = max(1, int(rps))
	}
	return rl
}

// Handler returns the middleware.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	if rl.limit == rate.Inf {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientKey(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfterSeconds()))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"rate limit exceeded, please try again later"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > idleLimiterTTL {
		for k, c := range rl.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) retryAfterSeconds() int {
	return max(1, int(time.Duration(float64(time.Second)/float64(rl.limit)).Seconds()))
}

// clientKey identifies the caller for rate limiting by remote IP.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
