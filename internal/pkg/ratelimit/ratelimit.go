// Package ratelimit provides the in-process login failure limiter: a fixed
// time window of failed attempts keyed by (origin, username). State is
// best-effort and process-local; multi-process deployments use the Redis
// limiter instead.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultWindow      = 10 * time.Minute
	DefaultMaxAttempts = 5
)

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts login failures per (origin, username) within a fixed
// window. Stale entries are evicted lazily on access; Sweep may additionally
// be run periodically to bound the table size under many distinct keys.
type Limiter struct {
	window      time.Duration
	maxAttempts int

	mu      sync.Mutex
	buckets map[string]entry

	now func() time.Time // injectable clock for tests
}

// New returns a Limiter. Non-positive window or maxAttempts fall back to the
// defaults.
func New(window time.Duration, maxAttempts int) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Limiter{
		window:      window,
		maxAttempts: maxAttempts,
		buckets:     make(map[string]entry),
		now:         time.Now,
	}
}

// ShouldBlock reports whether the identity has exhausted its attempts in the
// current window. A bucket whose window has elapsed is treated as absent and
// evicted. Clock anomalies fail open.
func (l *Limiter) ShouldBlock(_ context.Context, origin, username string) bool {
	key := origin + "|" + username
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.buckets[key]
	if !ok {
		return false
	}
	if now.After(e.resetAt) {
		delete(l.buckets, key)
		return false
	}
	return e.count >= l.maxAttempts
}

// RecordFailure increments the identity's failure count, starting a new
// window when none is active.
func (l *Limiter) RecordFailure(_ context.Context, origin, username string) {
	key := origin + "|" + username
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.buckets[key]
	if !ok || now.After(e.resetAt) {
		l.buckets[key] = entry{count: 1, resetAt: now.Add(l.window)}
		return
	}
	e.count++
	l.buckets[key] = e
}

// RecordSuccess clears the identity's failures.
func (l *Limiter) RecordSuccess(_ context.Context, origin, username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, origin+"|"+username)
}

// Sweep evicts every bucket whose window has elapsed and returns the number
// removed. Intended to be called from a periodic ticker.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, e := range l.buckets {
		if now.After(e.resetAt) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}
