package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

// ClientService implements admin-only client management.
type ClientService struct {
	clients ports.ClientRepository
	reports ports.ReportRepository
	logger  zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, reports ports.ReportRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, reports: reports, logger: logger}
}

func (s *ClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	created, err := s.clients.Create(ctx, &domain.Client{
		Name:      input.Name,
		Email:     input.Email,
		CID:       input.CID,
		Notes:     input.Notes,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

// GetClient returns the client together with its report history, newest
// first.
func (s *ClientService) GetClient(ctx context.Context, id string) (*domain.Client, []domain.Report, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reports, err := s.reports.ListByClient(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return client, reports, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	return s.clients.Update(ctx, &domain.Client{
		ID:    input.ID,
		Name:  input.Name,
		Email: input.Email,
		CID:   input.CID,
		Notes: input.Notes,
	})
}

func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clients.List(ctx)
}
