package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/pkg/token"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions in Redis so that every process in a multi-node
// deployment sees the same session table. Expiry is delegated to key TTLs,
// which makes an expired session indistinguishable from a missing one.
type SessionStore struct {
	client      *redis.Client
	ttl         time.Duration
	renewWithin time.Duration
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client *redis.Client, ttl, renewWithin time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, renewWithin: renewWithin}
}

func (s *SessionStore) Create(ctx context.Context, userID string) (*domain.Session, error) {
	id, err := token.New()
	if err != nil {
		return nil, err
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+id, userID, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("session create: %w", err)
	}

	return &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
		Fresh:     true,
	}, nil
}

func (s *SessionStore) Validate(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKeyPrefix + id

	pipe := s.client.Pipeline()
	getCmd := pipe.Get(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session validate: %w", err)
	}

	userID := getCmd.Val()
	remaining := ttlCmd.Val()
	if userID == "" || remaining <= 0 {
		return nil, domain.ErrSessionNotFound
	}

	session := &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Now().Add(remaining),
	}

	// Renewal resets the TTL. EXPIRE on the same key is idempotent, so two
	// concurrent validations both observing the threshold do no harm.
	if remaining <= s.renewWithin {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("session renew: %w", err)
		}
		session.ExpiresAt = time.Now().Add(s.ttl)
		session.Fresh = true
	}

	return session, nil
}

func (s *SessionStore) Invalidate(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session invalidate: %w", err)
	}
	return nil
}
