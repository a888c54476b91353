package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

func newTestStore(ttl, renewWithin time.Duration) (*SessionStore, *time.Time) {
	s := NewSessionStore(ttl, renewWithin)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestSessionStore_CreateAndValidate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour, 30*time.Minute)

	created, err := s.Create(ctx, "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.Fresh {
		t.Fatalf("expected fresh session with id, got %+v", created)
	}

	got, err := s.Validate(ctx, created.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.UserID != "u1" {
		t.Fatalf("expected user u1, got %q", got.UserID)
	}
	if got.Fresh {
		t.Fatalf("session far from expiry must not be fresh")
	}
}

func TestSessionStore_UnknownID(t *testing.T) {
	s, _ := newTestStore(time.Hour, 30*time.Minute)

	if _, err := s.Validate(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStore_ExpiredLooksMissing(t *testing.T) {
	ctx := context.Background()
	s, now := newTestStore(time.Hour, 30*time.Minute)

	created, _ := s.Create(ctx, "u1")
	*now = now.Add(time.Hour + time.Second)

	if _, err := s.Validate(ctx, created.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to look missing, got %v", err)
	}
}

func TestSessionStore_RenewalWithinThreshold(t *testing.T) {
	ctx := context.Background()
	s, now := newTestStore(time.Hour, 30*time.Minute)

	created, _ := s.Create(ctx, "u1")
	oldExpiry := created.ExpiresAt

	*now = now.Add(45 * time.Minute) // 15 minutes before expiry

	got, err := s.Validate(ctx, created.ID)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !got.Fresh {
		t.Fatalf("expected renewal to mark session fresh")
	}
	if !got.ExpiresAt.After(oldExpiry) {
		t.Fatalf("expected strictly later expiry, old=%v new=%v", oldExpiry, got.ExpiresAt)
	}
	if got.ID != created.ID {
		t.Fatalf("renewal must rotate expiry, not identity")
	}

	// The old cookie value (same id) keeps working before expiry.
	again, err := s.Validate(ctx, created.ID)
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if again.Fresh {
		t.Fatalf("renewal must happen once per window, got fresh twice")
	}
	if !again.ExpiresAt.Equal(got.ExpiresAt) {
		t.Fatalf("second validation must not extend again")
	}
}

func TestSessionStore_InvalidateIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(time.Hour, 30*time.Minute)

	created, _ := s.Create(ctx, "u1")
	if err := s.Invalidate(ctx, created.ID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if err := s.Invalidate(ctx, created.ID); err != nil {
		t.Fatalf("second invalidate must be idempotent: %v", err)
	}
	if _, err := s.Validate(ctx, created.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected invalidated session to be gone, got %v", err)
	}
}
