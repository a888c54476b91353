package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const loginFailPrefix = "login:fail:"

// RateLimiter is the shared login failure counter for multi-process
// deployments. INCR gives the atomic per-key update the in-memory limiter
// gets from its mutex; key TTLs implement the window reset.
//
// Store errors fail open: an unreachable Redis must never lock legitimate
// users out, so they are logged and treated as "not blocked".
type RateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxAttempts int
	log         zerolog.Logger
}

// NewRateLimiter wraps the given Redis client.
func NewRateLimiter(client *redis.Client, window time.Duration, maxAttempts int, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{client: client, window: window, maxAttempts: maxAttempts, log: log}
}

func (l *RateLimiter) ShouldBlock(ctx context.Context, origin, username string) bool {
	n, err := l.client.Get(ctx, l.key(origin, username)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			l.log.Warn().Err(err).Msg("rate limiter unavailable, failing open")
		}
		return false
	}
	return n >= l.maxAttempts
}

func (l *RateLimiter) RecordFailure(ctx context.Context, origin, username string) {
	key := l.key(origin, username)

	pipe := l.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (l *RateLimiter) RecordSuccess(ctx context.Context, origin, username string) {
	if err := l.client.Del(ctx, l.key(origin, username)).Err(); err != nil {
		l.log.Warn().Err(err).Msg("failed to clear login failures")
	}
}

func (l *RateLimiter) key(origin, username string) string {
	return fmt.Sprintf("%s%s|%s", loginFailPrefix, origin, username)
}
