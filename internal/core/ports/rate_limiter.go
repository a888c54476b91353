package ports

import "context"

// LoginRateLimiter throttles credential-guessing. The identity is the
// (origin, username) pair: origin alone under-protects a distributed attack
// on one username, username alone under-protects stuffing from one origin.
//
// Implementations fail open: a broken clock or an unreachable backing store
// must never lock a legitimate user out.
type LoginRateLimiter interface {
	ShouldBlock(ctx context.Context, origin, username string) bool
	RecordFailure(ctx context.Context, origin, username string)
	RecordSuccess(ctx context.Context, origin, username string)
}
