package rate

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited is an exported constant or variable used by the authentication engine.
var ErrRateLimited = errors.New("rate limited")

// Config holds rate limiter tuning parameters.
type Config struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
	Prefix      string
}

// Limiter enforces a per-client-key request budget using Redis counters.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

// New creates a rate [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  redisClient,
		config: cfg,
	}
}

// Check increments the client's counter and returns [ErrRateLimited] once
// the count exceeds the window budget. Redis failures allow the request
// (fail-open) and report nil.
func (l *Limiter) Check(ctx context.Context, clientKey string) error {
	if !l.config.Enabled || clientKey == "" {
		return nil
	}

	count, err := l.incrementWithTTL(ctx, l.key(clientKey), l.config.Window)
	if err != nil {
		// Fail open: a rate-limit store outage must not block traffic.
		return nil
	}
	if count > int64(l.config.MaxRequests) {
		return ErrRateLimited
	}

	return nil
}

// Count returns the current counter for a client key. Missing keys return
// zero.
func (l *Limiter) Count(ctx context.Context, clientKey string) (int, error) {
	count, err := l.redis.Get(ctx, l.key(clientKey)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, err
		}
		return count, nil
	}

	// A failed first-hit EXPIRE leaves the counter persistent and the client
	// denied forever once over budget. Re-arm the TTL when it is missing.
	remaining, err := l.redis.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if remaining < 0 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, err
		}
	}

	return count, nil
}

func (l *Limiter) key(clientKey string) string {
	return l.config.Prefix + ":" + clientKey
}
