package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "library:login:"

// RedisRateLimiter keeps login throttling state in Redis so several API
// instances share one view of failed attempts. Failures are counted with
// INCR on a key that expires after the window; reaching the limit sets a
// lock key whose TTL is the lockout.
type RedisRateLimiter struct {
	client          *redis.Client
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
}

func NewRedisRateLimiter(client *redis.Client, cfg RateLimitConfig) *RedisRateLimiter {
	cfg = cfg.withDefaults()
	return &RedisRateLimiter{
		client:          client,
		maxAttempts:     cfg.MaxAttempts,
		windowDuration:  cfg.WindowDuration,
		lockoutDuration: cfg.LockoutDuration,
	}
}

func failKey(ip, email string) string { return redisKeyPrefix + "fail:" + limiterKey(ip, email) }
func lockKey(ip, email string) string { return redisKeyPrefix + "lock:" + limiterKey(ip, email) }

func (rl *RedisRateLimiter) Allow(ctx context.Context, ip, email string) (bool, time.Duration, error) {
	ttl, err := rl.client.PTTL(ctx, lockKey(ip, email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return true, 0, err
	}
	// PTTL reports -2 for a missing key and -1 for a key without expiry
	if ttl > 0 {
		return false, ttl, nil
	}
	return true, 0, nil
}

func (rl *RedisRateLimiter) RecordFailure(ctx context.Context, ip, email string) (bool, time.Duration, error) {
	key := failKey(ip, email)

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.windowDuration).Err(); err != nil {
			return false, 0, err
		}
	}

	if count < int64(rl.maxAttempts) {
		return false, 0, nil
	}

	_, err = rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, lockKey(ip, email), "1", rl.lockoutDuration)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return true, rl.lockoutDuration, nil
}

func (rl *RedisRateLimiter) RecordSuccess(ctx context.Context, ip, email string) error {
	return rl.client.Del(ctx, failKey(ip, email), lockKey(ip, email)).Err()
}

// Stop is a no-op; the client is owned and closed by the caller.
func (rl *RedisRateLimiter) Stop() {}
