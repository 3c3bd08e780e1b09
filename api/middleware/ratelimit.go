// ABOUTME: Rate limiting middleware for API endpoints
// ABOUTME: Token bucket per client IP backed by golang.org/x/time/rate

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kvk-insights-api/pkg/featureflags"
)

// visitorIdle is how long an IP may stay silent before its bucket is dropped
const visitorIdle = 10 * time.Minute

// RateLimiter tracks a token bucket per client IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	perMin   int
	burst    int
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP with
// the given burst. It starts a cleanup goroutine that runs until stop is closed.
func NewRateLimiter(perMinute, burst int, stop <-chan struct{}) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 1
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		perMin:   perMinute,
		burst:    burst,
		now:      time.Now,
	}

	if stop != nil {
		go rl.cleanupLoop(time.Minute, stop)
	}

	return rl
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-stop:
			return
		}
	}
}

// cleanup removes visitors idle for longer than visitorIdle
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorIdle {
			delete(rl.visitors, ip)
		}
	}
}

// Allow checks if a request from the given key is allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(float64(rl.perMin)/60), rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	// First entry of X-Forwarded-For is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware creates a middleware that enforces rate limits. It is a
// no-op for requests whose feature flags disable rate limiting.
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !featureflags.IsEnabled(r.Context(), featureflags.RateLimitEnabled) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limiter.perMin))

			if !limiter.Allow(extractIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSeconds(limiter.perMin)))
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"status":429,"title":"Too Many Requests","detail":"Rate limit exceeded. Please try again later."}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds is the time until one token is refilled
func retryAfterSeconds(perMinute int) int {
	secs := 60 / perMinute
	if secs < 1 {
		return 1
	}
	return secs
}
