package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// ReportRepository defines report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	// ListByClient returns the client's reports ordered by date descending,
	// then creation time descending.
	ListByClient(ctx context.Context, clientID string) ([]domain.Report, error)
}
