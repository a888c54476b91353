package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// LoginInput carries one login attempt. Origin is the caller's network
// origin (client IP) used together with Username as the rate-limit identity.
type LoginInput struct {
	Origin   string
	Username string
	Password string
}

// CreateUserInput carries an admin-initiated account creation.
type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Role     string
	ClientID string
}

// BootstrapAdminInput carries the one-time first-admin creation.
type BootstrapAdminInput struct {
	Username string
	Password string
	Email    string
}

// AuthService is the portal's auth core: it turns credentials into sessions
// and session ids back into identities.
type AuthService interface {
	// Login runs the gate sequence rate-check, credential lookup, password
	// verify, session issue. Rejections: domain.ErrValidation (missing
	// fields), domain.ErrRateLimited (blocked before any store access), and
	// domain.ErrInvalidCredentials for both an unknown username and a wrong
	// password, indistinguishably.
	Login(ctx context.Context, input LoginInput) (*domain.Session, *domain.User, error)

	// Logout invalidates the session regardless of whether it is still
	// valid. Never fails on an already-missing session.
	Logout(ctx context.Context, sessionID string) error

	// Authenticate resolves a session id to its session and owning user,
	// renewing the session when it is close to expiry (Session.Fresh signals
	// the caller to rewrite the cookie). Missing, expired or orphaned
	// sessions return domain.ErrSessionNotFound.
	Authenticate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)

	// CreateUser registers an account on behalf of an administrator.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
}

// SetupService performs the one-time bootstrap of the first admin account.
type SetupService interface {
	// BootstrapAdmin creates the first admin. Returns domain.ErrAdminExists
	// once any admin-role user is present and domain.ErrValidation on a
	// missing or too-short password.
	BootstrapAdmin(ctx context.Context, input BootstrapAdminInput) (*domain.User, error)
}
