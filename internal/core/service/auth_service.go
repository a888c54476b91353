package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
	"github.com/adpilot/agency-portal/internal/pkg/password"
)

// AuthService orchestrates the login gate sequence and session resolution.
type AuthService struct {
	users    ports.UserRepository
	clients  ports.ClientRepository
	sessions ports.SessionStore
	limiter  ports.LoginRateLimiter
	logger   zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	clients ports.ClientRepository,
	sessions ports.SessionStore,
	limiter ports.LoginRateLimiter,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, clients: clients, sessions: sessions, limiter: limiter, logger: logger}
}

// Login runs the gate sequence (rate check, credential lookup, password
// verify, session issue), short-circuiting at the first failed gate. An unknown
// username and a wrong password produce the identical
// domain.ErrInvalidCredentials; the rate limiter is consulted before the
// credential store so a blocked origin cannot probe lookup timing.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, nil, fmt.Errorf("%w: username and password required", domain.ErrValidation)
	}

	if s.limiter.ShouldBlock(ctx, input.Origin, input.Username) {
		s.logger.Warn().Str("origin", input.Origin).Msg("login rate limited")
		return nil, nil, domain.ErrRateLimited
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.limiter.RecordFailure(ctx, input.Origin, input.Username)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login lookup: %w", err)
	}

	if !password.Verify(user.PasswordHash, input.Password) {
		s.limiter.RecordFailure(ctx, input.Origin, input.Username)
		return nil, nil, domain.ErrInvalidCredentials
	}

	s.limiter.RecordSuccess(ctx, input.Origin, input.Username)

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return session, user, nil
}

// Logout invalidates the session server-side. It succeeds even when the
// session was already gone, so the caller can always clear the cookie.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Authenticate resolves a session id to its session and owning user. A
// session whose user record has vanished is invalidated and reported as
// missing rather than leaking a half-authenticated state.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	if sessionID == "" {
		return nil, nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.Validate(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.sessions.Invalidate(ctx, sessionID)
			return nil, nil, domain.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("authenticate lookup: %w", err)
	}

	return session, user, nil
}

// CreateUser registers an account on behalf of an administrator. A
// client-role user must be bound to an existing client.
func (s *AuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", domain.ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role", domain.ErrValidation)
	}

	if role == domain.RoleClient {
		if input.ClientID == "" {
			return nil, fmt.Errorf("%w: client users require a client binding", domain.ErrValidation)
		}
		if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				return nil, fmt.Errorf("%w: unknown client", domain.ErrValidation)
			}
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if role == domain.RoleClient {
		user.ClientID = input.ClientID
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}
