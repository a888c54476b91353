package domain

import "time"

// Report is a dated ad-performance record owned by exactly one client.
// The four numeric figures are independently nullable: a day may have a
// top-up without spend, clicks without impressions, and so on.
type Report struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Topup      *float64  `json:"topup"`
	Spend      *float64  `json:"spend"`
	Click      *float64  `json:"click"`
	Impression *float64  `json:"impression"`
	Status     string    `json:"status,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
