package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

// ReportHandler handles daily report entry and scoped listing.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type reportRequest struct {
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	Topup      *float64 `json:"topup,omitempty"`
	Spend      *float64 `json:"spend,omitempty"`
	Click      *float64 `json:"click,omitempty"`
	Impression *float64 `json:"impression,omitempty"`
	Status     string   `json:"status,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

type reportResponse struct {
	Report *domain.Report `json:"report"`
}

type reportListResponse struct {
	Reports []domain.Report `json:"reports"`
}

// Create records a daily report for a client.
//
// @Summary      Create a report
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Client id"
// @Param        body  body      reportRequest  true  "Report fields"
// @Success      201   {object}  reportResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/clients/{id}/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	report, err := h.reports.CreateReport(c.Request().Context(), ports.CreateReportInput{
		ClientID:   c.Param("id"),
		Date:       req.Date,
		Topup:      req.Topup,
		Spend:      req.Spend,
		Click:      req.Click,
		Impression: req.Impression,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reportResponse{Report: report})
}

// ListForClient returns every report of one client, newest date first.
//
// @Summary      List a client's reports
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  reportListResponse
// @Router       /api/admin/clients/{id}/reports [get]
func (h *ReportHandler) ListForClient(c echo.Context) error {
	role, clientID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.ListReports(c.Request().Context(), ports.ListReportsInput{
		Role:           role,
		ClientID:       clientID,
		TargetClientID: c.Param("id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportListResponse{Reports: reports})
}

// ListOwn returns the reports of the authenticated client's own account.
//
// @Summary      List own reports
// @Tags         client
// @Produce      json
// @Success      200  {object}  reportListResponse
// @Router       /api/client/reports [get]
func (h *ReportHandler) ListOwn(c echo.Context) error {
	role, clientID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reports, err := h.reports.ListReports(c.Request().Context(), ports.ListReportsInput{
		Role:           role,
		ClientID:       clientID,
		TargetClientID: clientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportListResponse{Reports: reports})
}
