package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

// ReportService implements report entry and client-scoped listing.
type ReportService struct {
	reports ports.ReportRepository
	clients ports.ClientRepository
	logger  zerolog.Logger
}

func NewReportService(reports ports.ReportRepository, clients ports.ClientRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, clients: clients, logger: logger}
}

// CreateReport records a daily report for a client. Date is the only
// required figure; the numeric columns may each be absent.
func (s *ReportService) CreateReport(ctx context.Context, input ports.CreateReportInput) (*domain.Report, error) {
	if input.Date == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}

	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	created, err := s.reports.Create(ctx, &domain.Report{
		ClientID:   input.ClientID,
		Date:       input.Date,
		Topup:      input.Topup,
		Spend:      input.Spend,
		Click:      input.Click,
		Impression: input.Impression,
		Status:     input.Status,
		Notes:      input.Notes,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ClientID).Str("date", created.Date).Msg("report created")
	return created, nil
}

// ListReports returns the target client's reports. Admins may list any
// client; a client-role caller may only list its own: any other target is
// rejected with domain.ErrForbidden, never silently narrowed.
func (s *ReportService) ListReports(ctx context.Context, input ports.ListReportsInput) ([]domain.Report, error) {
	switch input.Role {
	case domain.RoleAdmin:
	case domain.RoleClient:
		if input.ClientID == "" || input.TargetClientID != input.ClientID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if _, err := s.clients.FindByID(ctx, input.TargetClientID); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) && input.Role == domain.RoleClient {
			// A client user bound to a vanished client gets an empty history
			// rather than an existence probe.
			return []domain.Report{}, nil
		}
		return nil, err
	}

	return s.reports.ListByClient(ctx, input.TargetClientID)
}
