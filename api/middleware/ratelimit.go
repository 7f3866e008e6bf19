// ABOUTME: Per-client rate limiting middleware for the search API
// ABOUTME: Token-bucket limiting keyed by client IP, built on x/time/rate

package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleEvictAfter bounds how long an inactive client keeps its bucket.
const idleEvictAfter = 10 * time.Minute

// clientLimiter pairs a token bucket with its last activity.
type clientLimiter struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-client search budget. Each client gets a
// token bucket holding the full budget, refilled evenly across the
// window, so a short burst is fine but a sustained overrun is not.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   int
	window  time.Duration
}

// NewRateLimiter creates a limiter allowing limit requests per window
// for each distinct client key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		window:  window,
	}

	go rl.evictIdle()

	return rl
}

// evictIdle drops buckets for clients that stopped searching.
func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(idleEvictAfter)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for key, c := range rl.clients {
			if time.Since(c.lastSeen) > idleEvictAfter {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[key]
	if !ok {
		refill := rate.Every(rl.window / time.Duration(rl.limit))
		c = &clientLimiter{bucket: rate.NewLimiter(refill, rl.limit)}
		rl.clients[key] = c
	}
	c.lastSeen = time.Now()

	return c.bucket.Allow()
}

// clientIP resolves the originating client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// First hop in the chain is the client.
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware rejects clients over their search budget with 429.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Window", limiter.window.String())

			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate_limited","message":"Search budget exhausted for this client, retry shortly."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
