package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/readhub/library/internal/config"
)

// LoginLimiter throttles failed logins per client IP and email.
type LoginLimiter interface {
	// Allow reports whether a login attempt may proceed and, if not, for how long it stays blocked.
	Allow(ctx context.Context, ip, email string) (bool, time.Duration, error)
	// RecordFailure counts a failed attempt and reports whether it triggered a lockout.
	RecordFailure(ctx context.Context, ip, email string) (bool, time.Duration, error)
	RecordSuccess(ctx context.Context, ip, email string) error
	Stop()
}

// NewLoginLimiter returns a Redis-backed limiter when client is non-nil, an
// in-memory one otherwise, and a no-op limiter when throttling is disabled.
func NewLoginLimiter(cfg config.Auth, client *redis.Client) LoginLimiter {
	if cfg.MaxLoginAttempts <= 0 {
		return NoopLimiter{}
	}
	rlCfg := RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	}
	if client != nil {
		return NewRedisRateLimiter(client, rlCfg)
	}
	return NewRateLimiter(rlCfg)
}

// RateLimiter provides rate limiting for login attempts.
// It tracks failed attempts per IP+email combination using a sliding window.
type RateLimiter struct {
	mu              sync.RWMutex
	attempts        map[string]*attemptRecord
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

// RateLimitConfig contains configuration for the rate limiter.
type RateLimitConfig struct {
	MaxAttempts     int           // Maximum attempts before lockout (default: 5)
	WindowDuration  time.Duration // Time window for counting attempts (default: 15m)
	LockoutDuration time.Duration // How long to lock out after max attempts (default: 30m)
	CleanupInterval time.Duration // How often to clean up expired records (default: 5m)
}

// DefaultRateLimitConfig returns sensible defaults for rate limiting.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxAttempts:     5,
		WindowDuration:  15 * time.Minute,
		LockoutDuration: 30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

func (cfg RateLimitConfig) withDefaults() RateLimitConfig {
	def := DefaultRateLimitConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.WindowDuration <= 0 {
		cfg.WindowDuration = def.WindowDuration
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	return cfg
}

// NewRateLimiter creates a new in-memory rate limiter with the given configuration.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	cfg = cfg.withDefaults()

	rl := &RateLimiter{
		attempts:        make(map[string]*attemptRecord),
		maxAttempts:     cfg.MaxAttempts,
		windowDuration:  cfg.WindowDuration,
		lockoutDuration: cfg.LockoutDuration,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

// Allow checks if a login attempt should be allowed.
func (rl *RateLimiter) Allow(_ context.Context, ip, email string) (bool, time.Duration, error) {
	key := limiterKey(ip, email)
	now := rl.now()

	rl.mu.RLock()
	defer rl.mu.RUnlock()

	record, exists := rl.attempts[key]
	if !exists {
		return true, 0, nil
	}

	if !record.lockedUntil.IsZero() && now.Before(record.lockedUntil) {
		return false, record.lockedUntil.Sub(now), nil
	}

	// Window expired, counting starts over
	if now.Sub(record.firstAttempt) > rl.windowDuration {
		return true, 0, nil
	}

	if record.count < rl.maxAttempts {
		return true, 0, nil
	}

	if !record.lockedUntil.IsZero() {
		// lockout served
		return true, 0, nil
	}
	return false, rl.lockoutDuration, nil
}

// RecordFailure records a failed login attempt.
func (rl *RateLimiter) RecordFailure(_ context.Context, ip, email string) (bool, time.Duration, error) {
	key := limiterKey(ip, email)
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, exists := rl.attempts[key]
	if !exists {
		record = &attemptRecord{firstAttempt: now}
		rl.attempts[key] = record
	}

	expired := now.Sub(record.firstAttempt) > rl.windowDuration
	lockServed := !record.lockedUntil.IsZero() && !now.Before(record.lockedUntil)
	if expired || lockServed {
		record.count = 0
		record.firstAttempt = now
		record.lockedUntil = time.Time{}
	}

	record.count++

	if record.count >= rl.maxAttempts {
		record.lockedUntil = now.Add(rl.lockoutDuration)
		return true, rl.lockoutDuration, nil
	}

	return false, 0, nil
}

// RecordSuccess clears the failure record for a successful login.
func (rl *RateLimiter) RecordSuccess(_ context.Context, ip, email string) error {
	key := limiterKey(ip, email)

	rl.mu.Lock()
	delete(rl.attempts, key)
	rl.mu.Unlock()
	return nil
}

// cleanupLoop periodically removes expired records.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanup removes expired records.
func (rl *RateLimiter) cleanup() {
	now := rl.now()
	expiry := rl.windowDuration + rl.lockoutDuration

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, record := range rl.attempts {
		windowExpired := now.Sub(record.firstAttempt) > expiry
		lockoutExpired := record.lockedUntil.IsZero() || now.After(record.lockedUntil)

		if windowExpired && lockoutExpired {
			delete(rl.attempts, key)
		}
	}
}

// limiterKey normalises the email so "Ana@X.com" and "ana@x.com" share a counter.
func limiterKey(ip, email string) string {
	return ip + ":" + strings.ToLower(strings.TrimSpace(email))
}

// NoopLimiter allows everything.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (NoopLimiter) RecordFailure(context.Context, string, string) (bool, time.Duration, error) {
	return false, 0, nil
}

func (NoopLimiter) RecordSuccess(context.Context, string, string) error { return nil }

func (NoopLimiter) Stop() {}
