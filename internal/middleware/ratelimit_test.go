package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/middleware"
)

func rateLimitedRequest(h http.Handler, userID, remote string) int {
	req := httptest.NewRequest(http.MethodGet, "/places/search?q=goa", nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	h := middleware.NewRateLimiter(1).Handler(okHandler)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "alice", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(h, "alice", "10.0.0.1:1234"))
}

func TestRateLimiter_IPsAreIndependent(t *testing.T) {
	h := middleware.NewRateLimiter(1).Handler(okHandler)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "alice", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "alice", "10.0.0.2:1234"))
}

func TestRateLimiter_RotatingUserHeaderDoesNotBypass(t *testing.T) {
	h := middleware.NewRateLimiter(1).Handler(okHandler)

	allowed := 0
	for i := range 100 {
		if rateLimitedRequest(h, fmt.Sprintf("user-%d", i), "10.0.0.1:1234") == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
}

func TestRateLimiter_KeysOnRemoteIP(t *testing.T) {
	h := middleware.NewRateLimiter(1).Handler(okHandler)

	assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "", "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(h, "", "10.0.0.1:5678"), "same host, different port")
	assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "", "10.0.0.2:1234"))
}

func TestRateLimiter_429Headers(t *testing.T) {
	h := middleware.NewRateLimiter(1).Handler(okHandler)
	rateLimitedRequest(h, "alice", "10.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:2"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

func TestRateLimiter_ZeroDisables(t *testing.T) {
	h := middleware.NewRateLimiter(0).Handler(okHandler)

	for range 50 {
		assert.Equal(t, http.StatusOK, rateLimitedRequest(h, "alice", "10.0.0.1:1"))
	}
}
