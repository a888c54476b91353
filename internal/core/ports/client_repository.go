package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// ClientRepository defines client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	// FindByID returns domain.ErrClientNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	// List returns all clients, newest first.
	List(ctx context.Context) ([]domain.Client, error)
}
