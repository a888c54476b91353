package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// CreateClientInput carries a new client record.
type CreateClientInput struct {
	Name  string
	Email string
	CID   string
	Notes string
}

// UpdateClientInput carries a full-record client update.
type UpdateClientInput struct {
	ID    string
	Name  string
	Email string
	CID   string
	Notes string
}

// ClientService defines admin-only client management.
type ClientService interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, []domain.Report, error)
	UpdateClient(ctx context.Context, input UpdateClientInput) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
}
