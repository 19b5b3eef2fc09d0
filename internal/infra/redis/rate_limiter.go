package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter implements a fixed-window counter on top of Redis.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		err = r.client.Expire(ctx, key, window)
		if err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		return false, nil
	}

	return true, nil
}

// ActivateKey scopes the limiter per user for the activation endpoint.
func ActivateKey(userRef string) string {
	return fmt.Sprintf("rate_limit:activate:%s", userRef)
}

// ActivationLimiter binds the generic limiter to the activation endpoint's
// per-user budget.
type ActivationLimiter struct {
	rl     *RateLimiter
	max    int
	window time.Duration
}

func NewActivationLimiter(client RedisClient, max int, window time.Duration) *ActivationLimiter {
	return &ActivationLimiter{rl: NewRateLimiter(client), max: max, window: window}
}

func (l *ActivationLimiter) Allow(ctx context.Context, userRef string) (bool, error) {
	return l.rl.Allow(ctx, ActivateKey(userRef), l.max, l.window)
}
