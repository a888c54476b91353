package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(window time.Duration, max int) (*Limiter, *time.Time) {
	l := New(window, max)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(10*time.Minute, 5)

	for i := 0; i < 4; i++ {
		l.RecordFailure(ctx, "1.2.3.4", "alice")
		if l.ShouldBlock(ctx, "1.2.3.4", "alice") {
			t.Fatalf("blocked too early after %d failures", i+1)
		}
	}
	l.RecordFailure(ctx, "1.2.3.4", "alice")
	if !l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("expected block after 5 failures")
	}
}

func TestLimiter_IdentityIsOriginAndUsername(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(10*time.Minute, 2)

	l.RecordFailure(ctx, "1.2.3.4", "alice")
	l.RecordFailure(ctx, "1.2.3.4", "alice")

	if !l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("expected (origin, username) pair to be blocked")
	}
	if l.ShouldBlock(ctx, "5.6.7.8", "alice") {
		t.Fatalf("different origin must not be blocked")
	}
	if l.ShouldBlock(ctx, "1.2.3.4", "bob") {
		t.Fatalf("different username must not be blocked")
	}
}

func TestLimiter_WindowExpiryResets(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLimiter(10*time.Minute, 2)

	l.RecordFailure(ctx, "1.2.3.4", "alice")
	l.RecordFailure(ctx, "1.2.3.4", "alice")
	if !l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("expected block inside window")
	}

	*now = now.Add(10*time.Minute + time.Second)
	if l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("expected lazy reset after window elapsed")
	}

	// A failure after expiry starts a fresh window from one.
	l.RecordFailure(ctx, "1.2.3.4", "alice")
	if l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("single failure in new window must not block")
	}
}

func TestLimiter_SuccessClears(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(10*time.Minute, 2)

	l.RecordFailure(ctx, "1.2.3.4", "alice")
	l.RecordFailure(ctx, "1.2.3.4", "alice")
	l.RecordSuccess(ctx, "1.2.3.4", "alice")

	if l.ShouldBlock(ctx, "1.2.3.4", "alice") {
		t.Fatalf("expected success to clear failures")
	}
}

func TestLimiter_Sweep(t *testing.T) {
	ctx := context.Background()
	l, now := newTestLimiter(time.Minute, 3)

	l.RecordFailure(ctx, "1.2.3.4", "alice")
	l.RecordFailure(ctx, "5.6.7.8", "bob")

	*now = now.Add(2 * time.Minute)
	l.RecordFailure(ctx, "9.9.9.9", "carol")

	if removed := l.Sweep(); removed != 2 {
		t.Fatalf("expected 2 stale buckets swept, got %d", removed)
	}
	if l.ShouldBlock(ctx, "9.9.9.9", "carol") {
		t.Fatalf("live bucket must survive sweep")
	}
}

func TestLimiter_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	l := New(time.Minute, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				l.RecordFailure(ctx, "1.2.3.4", "alice")
				l.ShouldBlock(ctx, "1.2.3.4", "alice")
			}
		}()
	}
	wg.Wait()

	l.mu.Lock()
	got := l.buckets["1.2.3.4|alice"].count
	l.mu.Unlock()
	if got != 500 {
		t.Fatalf("expected 500 recorded failures, got %d", got)
	}
}
