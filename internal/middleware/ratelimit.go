package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hairstudio/salon/internal/ui"
)

// window counts attempts from one address in a fixed time window.
type window struct {
	start time.Time
	count int
}

// RateLimiter allows at most limit attempts per address per period.
// Expired windows are swept on access, so no background goroutine is needed.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	period    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow records an attempt from addr and reports whether it is within the limit.
func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > rl.period {
		rl.sweep(now)
	}

	w, ok := rl.windows[addr]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.windows[addr] = &window{start: now, count: 1}
		return true
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

func (rl *RateLimiter) sweep(now time.Time) {
	for addr, w := range rl.windows {
		if now.Sub(w.start) >= rl.period {
			delete(rl.windows, addr)
		}
	}
	rl.lastSweep = now
}

// RateLimitLogin guards the admin login form: 5 attempts per 15 minutes per address.
func RateLimitLogin() func(http.HandlerFunc) http.HandlerFunc {
	return rateLimit(NewRateLimiter(5, 15*time.Minute))
}

func rateLimit(limiter *RateLimiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			addr := getClientIP(r)
			if !limiter.Allow(addr) {
				slog.Warn("login rate limit exceeded", "ip", addr)
				ui.RenderError(w, r, http.StatusTooManyRequests)
				return
			}
			next(w, r)
		}
	}
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
