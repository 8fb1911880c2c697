package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/aflcoach/aflcoach-data/internal/api/respond"
)

// --------------------------------------------------------------------------
// Request timing middleware
// --------------------------------------------------------------------------

// TimingMiddleware adds X-Process-Time header to all responses.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", float64(elapsed.Microseconds())/1000.0))
	})
}

// --------------------------------------------------------------------------
// Rate limiting middleware (IP-based token bucket)
// --------------------------------------------------------------------------

type clientLimiters struct {
	mu     sync.Mutex
	byIP   map[string]*rate.Limiter
	refill rate.Limit
	burst  int
}

func (l *clientLimiters) allow(ip string) bool {
	l.mu.Lock()
	limiter, exists := l.byIP[ip]
	if !exists {
		limiter = rate.NewLimiter(l.refill, l.burst)
		l.byIP[ip] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// RateLimitMiddleware rate-limits by client IP. Tokens refill at
// requestsPerWindow spread over the window; burst caps how many may land
// at once. Rejections carry a Retry-After of one full window.
func RateLimitMiddleware(requestsPerWindow, burst int, window time.Duration) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	limiters := &clientLimiters{
		byIP:   make(map[string]*rate.Limiter),
		refill: rate.Limit(float64(requestsPerWindow) / window.Seconds()),
		burst:  burst,
	}
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !limiters.allow(ip) {
				w.Header().Set("Retry-After", retryAfter)
				respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
