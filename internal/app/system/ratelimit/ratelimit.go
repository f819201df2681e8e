// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter provides rate limiting using a sliding window algorithm.
// It is safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	windows  map[string]*window
	limit    int           // max requests per window
	duration time.Duration // window duration
	cleanup  time.Duration // how often to clean old entries
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a new rate limiter.
// limit: maximum requests allowed per duration
// duration: the time window for counting requests
func New(limit int, duration time.Duration) *Limiter {
	l := &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		cleanup:  duration * 2,
	}
	go l.cleanupLoop()
	return l
}

// Allow checks if a request from the given key should be allowed.
// Returns true if allowed, false if rate limited.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		l.windows[key] = &window{
			count:     1,
			expiresAt: now.Add(l.duration),
		}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}

// Remaining returns how many requests are left for this key in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, exists := l.windows[key]

	if !exists || now.After(w.expiresAt) {
		return l.limit
	}

	remaining := l.limit - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the rate limit for a specific key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// cleanupLoop periodically removes expired entries to prevent memory leaks.
func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, w := range l.windows {
			if now.After(w.expiresAt) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

// ClientIP extracts the client IP from an HTTP request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxied requests),
// then falls back to RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}

// JoinLimiter provides specialized rate limiting for invite-code join attempts.
// Codes are short and guessable, so it tracks both IP-based and code-based
// limits to prevent:
// - Distributed guessing from multiple IPs
// - Targeted guessing against a specific group's code space
type JoinLimiter struct {
	ipLimiter   *Limiter
	codeLimiter *Limiter
}

// NewJoinLimiter creates a limiter configured for invite-code protection.
// Defaults: 10 attempts per IP per minute, 5 attempts per code per 5 minutes.
func NewJoinLimiter() *JoinLimiter {
	return &JoinLimiter{
		ipLimiter:   New(10, time.Minute),
		codeLimiter: New(5, 5*time.Minute),
	}
}

// NewJoinLimiterWithConfig creates a join limiter with custom limits.
func NewJoinLimiterWithConfig(ipLimit int, ipDuration time.Duration, codeLimit int, codeDuration time.Duration) *JoinLimiter {
	return &JoinLimiter{
		ipLimiter:   New(ipLimit, ipDuration),
		codeLimiter: New(codeLimit, codeDuration),
	}
}

// Check verifies if a join attempt should be allowed.
// Returns (allowed, reason) where reason explains why it was blocked.
func (jl *JoinLimiter) Check(r *http.Request, code string) (bool, string) {
	ip := ClientIP(r)

	if !jl.ipLimiter.Allow(ip) {
		return false, "too many join attempts, wait a minute before trying again"
	}

	if code != "" {
		codeKey := strings.ToUpper(strings.TrimSpace(code))
		if !jl.codeLimiter.Allow(codeKey) {
			return false, "too many attempts for this invite code, wait a few minutes"
		}
	}

	return true, ""
}

// ResetIP clears the rate limit for the requesting IP after a successful join.
func (jl *JoinLimiter) ResetIP(r *http.Request) {
	jl.ipLimiter.Reset(ClientIP(r))
}
