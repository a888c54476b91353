package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// SessionStore creates, validates, renews and invalidates server-side
// sessions. Implementations must treat an expired session identically to a
// missing one.
type SessionStore interface {
	// Create issues a new session for the user with an unguessable id and the
	// configured lifetime. The returned session is marked Fresh.
	Create(ctx context.Context, userID string) (*domain.Session, error)

	// Validate resolves a session id. Missing or expired ids return
	// domain.ErrSessionNotFound. When validation lands within the renewal
	// threshold of expiry, the session's expiry is extended once per renewal
	// window and the session is returned with Fresh set so the caller knows
	// to rewrite the cookie.
	Validate(ctx context.Context, id string) (*domain.Session, error)

	// Invalidate deletes the session. Idempotent on an already-missing id.
	Invalidate(ctx context.Context, id string) error
}
