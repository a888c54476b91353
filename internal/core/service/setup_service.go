package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
	"github.com/adpilot/agency-portal/internal/pkg/password"
)

const minBootstrapPasswordLen = 6

// SetupService creates the portal's first admin account exactly once.
type SetupService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewSetupService(users ports.UserRepository, logger zerolog.Logger) *SetupService {
	return &SetupService{users: users, logger: logger}
}

// BootstrapAdmin creates the first admin. The CountAdmins pre-check gives a
// clean 403 without an insert attempt; the repository's atomic
// CreateBootstrapAdmin is what actually guarantees at-most-one under
// concurrent requests.
func (s *SetupService) BootstrapAdmin(ctx context.Context, input ports.BootstrapAdminInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", domain.ErrValidation)
	}
	if len(input.Password) < minBootstrapPasswordLen {
		return nil, fmt.Errorf("%w: password too short", domain.ErrValidation)
	}

	n, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}
	if n > 0 {
		return nil, domain.ErrAdminExists
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	created, err := s.users.CreateBootstrapAdmin(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("bootstrap admin created")
	return created, nil
}
