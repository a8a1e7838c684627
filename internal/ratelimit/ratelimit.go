// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Config holds rate limiting configuration
type Config struct {
	WindowSize    time.Duration // Time window for rate limiting
	MaxAttempts   int           // Maximum attempts per window
	CleanupPeriod time.Duration // How often to clean up old entries
}

// DefaultRequestConfig limits raw request volume per client IP.
func DefaultRequestConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxAttempts:   120,
		CleanupPeriod: 10 * time.Minute,
	}
}

// PromptConfig limits conversations started per user.
func PromptConfig(limit int, window time.Duration) *Config {
	return &Config{
		WindowSize:    window,
		MaxAttempts:   limit,
		CleanupPeriod: window,
	}
}

// attemptRecord tracks attempts for an identifier
type attemptRecord struct {
	Count     int
	FirstSeen time.Time
}

// MemoryRateLimiter implements fixed window in-memory rate limiting
type MemoryRateLimiter struct {
	config   *Config
	clock    clock.Clock
	attempts map[string]*attemptRecord
	mu       sync.Mutex
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewMemoryRateLimiter creates a new in-memory rate limiter
func NewMemoryRateLimiter(config *Config, clk clock.Clock) *MemoryRateLimiter {
	if clk == nil {
		clk = clock.New()
	}
	limiter := &MemoryRateLimiter{
		config:   config,
		clock:    clk,
		attempts: make(map[string]*attemptRecord),
		stopCh:   make(chan struct{}),
	}

	go limiter.cleanupLoop()

	return limiter
}

// RateLimitInfo contains information about rate limit status
type RateLimitInfo struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Allow counts an attempt for identifier. Rejected attempts do not extend
// the window.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	record, exists := rl.attempts[identifier]
	if !exists || !now.Before(record.FirstSeen.Add(rl.config.WindowSize)) {
		record = &attemptRecord{FirstSeen: now}
		rl.attempts[identifier] = record
	}

	reset := record.FirstSeen.Add(rl.config.WindowSize)
	if record.Count >= rl.config.MaxAttempts {
		return false, &RateLimitInfo{
			Allowed:    false,
			Remaining:  0,
			ResetTime:  reset,
			RetryAfter: reset.Sub(now),
		}
	}

	record.Count++
	return true, &RateLimitInfo{
		Allowed:   true,
		Remaining: rl.config.MaxAttempts - record.Count,
		ResetTime: reset,
	}
}

// Reset forgets identifier.
func (rl *MemoryRateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, identifier)
}

// Limit is the configured attempts per window.
func (rl *MemoryRateLimiter) Limit() int { return rl.config.MaxAttempts }

// cleanupLoop periodically removes old records
func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := rl.clock.Ticker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup removes expired records
func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.clock.Now()
	for identifier, record := range rl.attempts {
		if !now.Before(record.FirstSeen.Add(rl.config.WindowSize)) {
			delete(rl.attempts, identifier)
		}
	}
}

// Close stops the cleanup goroutine
func (rl *MemoryRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// GetClientIP extracts the real client IP from request
func GetClientIP(r *http.Request) string {
	// Check for forwarded IP (behind proxy/load balancer)
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// parseFirstIP extracts the first IP from a comma-separated list
func parseFirstIP(forwarded string) string {
	ips := strings.Split(forwarded, ",")
	return strings.TrimSpace(ips[0])
}
