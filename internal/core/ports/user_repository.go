package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// UserRepository defines user persistence. It is consulted by the auth core
// and never owns policy.
type UserRepository interface {
	// FindByUsername performs an exact, case-sensitive lookup and returns
	// domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CreateBootstrapAdmin atomically creates the one-time first admin,
	// returning domain.ErrAdminExists when a bootstrap admin already exists.
	// Unlike a check-then-insert in the caller, this must hold under
	// concurrent bootstrap requests.
	CreateBootstrapAdmin(ctx context.Context, user *domain.User) (*domain.User, error)
	// CountAdmins reports how many admin-role users exist. Used by the
	// one-time bootstrap gate.
	CountAdmins(ctx context.Context) (int64, error)
}
