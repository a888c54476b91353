package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/adpilot/agency-portal/internal/core/domain"
)

// ReportRepository is the degraded-mode report store.
type ReportRepository struct {
	mu      sync.RWMutex
	seq     int
	reports []domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *report
	if clone.ID == "" {
		r.seq++
		clone.ID = "r" + strconv.Itoa(r.seq)
	}
	r.reports = append(r.reports, clone)

	out := clone
	return &out, nil
}

func (r *ReportRepository) ListByClient(_ context.Context, clientID string) ([]domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Report, 0)
	for _, rep := range r.reports {
		if rep.ClientID == clientID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
