// Package memory holds the in-process fallback stores used when no Mongo or
// Redis connection is configured. State is per-process and best-effort; in a
// multi-process deployment the Redis and Mongo implementations must be used
// instead, since these maps cannot provide cross-process atomicity.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/pkg/token"
)

// SessionStore keeps sessions in a mutex-guarded map. Expired records are
// treated identically to missing ones and evicted lazily on access.
type SessionStore struct {
	ttl         time.Duration
	renewWithin time.Duration

	mu       sync.Mutex
	sessions map[string]domain.Session

	now func() time.Time // injectable clock for tests
}

// NewSessionStore returns a store issuing sessions with the given lifetime,
// renewed when validated within renewWithin of expiry.
func NewSessionStore(ttl, renewWithin time.Duration) *SessionStore {
	return &SessionStore{
		ttl:         ttl,
		renewWithin: renewWithin,
		sessions:    make(map[string]domain.Session),
		now:         time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, userID string) (*domain.Session, error) {
	id, err := token.New()
	if err != nil {
		return nil, err
	}

	session := domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	session.Fresh = true
	return &session, nil
}

func (s *SessionStore) Validate(_ context.Context, id string) (*domain.Session, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.Expired(now) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}

	// One extension per renewal window: renewal pushes the expiry out of the
	// threshold, so a concurrent validation that also saw the old expiry just
	// sets the same new value again.
	if session.ExpiresAt.Sub(now) <= s.renewWithin {
		session.ExpiresAt = now.Add(s.ttl)
		s.sessions[id] = session
		session.Fresh = true
	}

	return &session, nil
}

func (s *SessionStore) Invalidate(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
