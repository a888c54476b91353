package ports

import (
	"context"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// CreateReportInput carries a new daily report for a client.
type CreateReportInput struct {
	ClientID   string
	Date       string
	Topup      *float64
	Spend      *float64
	Click      *float64
	Impression *float64
	Status     string
	Notes      string
}

// ListReportsInput scopes a report listing. Role and ClientID come from the
// authenticated session: a client-role caller may only list reports whose
// owning client equals its bound ClientID.
type ListReportsInput struct {
	Role     string
	ClientID string
	// TargetClientID is the client whose reports are requested.
	TargetClientID string
}

// ReportService defines report entry and scoped listing.
type ReportService interface {
	CreateReport(ctx context.Context, input CreateReportInput) (*domain.Report, error)
	ListReports(ctx context.Context, input ListReportsInput) ([]domain.Report, error)
}
