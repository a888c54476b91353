package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side proof of authentication. Its ID is the opaque
// bearer token carried in the session cookie; it grants exactly the role and
// client scope of its owning user at validation time.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`

	// Fresh is true when the session was just created or its expiry was just
	// extended, signalling the caller to rewrite the session cookie. It is
	// transient state, never persisted.
	Fresh bool `json:"-"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
