package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limiterMaxAttempts = 10
	limiterWindow      = 15 * time.Minute
)

// LoginLimiter throttles failed login attempts per key (the login email)
// using a counter with a sliding expiry. The limiter fails open: Redis being
// unreachable never blocks authentication.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter wraps the given Redis client with the default allowance of
// attempts per window.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{
		client:      client,
		maxAttempts: limiterMaxAttempts,
		window:      limiterWindow,
	}
}

// Allow reports whether another attempt for this key is permitted.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(key)).Int()
	if err != nil {
		if err == redis.Nil {
			return true, nil
		}
		return true, fmt.Errorf("login limiter check: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Record notes a failed attempt, starting the window on the first one.
func (l *LoginLimiter) Record(ctx context.Context, key string) error {
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, l.key(key))
	pipe.Expire(ctx, l.key(key), l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Reset clears the attempt counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.key(key)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(key string) string {
	return "login_attempts:" + key
}
