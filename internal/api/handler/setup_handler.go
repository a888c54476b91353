package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/api/metrics"
	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

// SetupHandler handles the one-time bootstrap admin creation.
type SetupHandler struct {
	setup ports.SetupService
}

func NewSetupHandler(setup ports.SetupService) *SetupHandler {
	return &SetupHandler{setup: setup}
}

type bootstrapRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateAdmin creates the first admin account. Permitted only while no admin
// exists; afterwards every invocation is rejected with 403.
//
// @Summary      Bootstrap the first admin
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body      bootstrapRequest  true  "Admin credentials"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/setup/create-admin [post]
func (h *SetupHandler) CreateAdmin(c echo.Context) error {
	var req bootstrapRequest
	if err := c.Bind(&req); err != nil {
		metrics.BootstrapAttemptsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.BootstrapAttemptsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	_, err := h.setup.BootstrapAdmin(c.Request().Context(), ports.BootstrapAdminInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			metrics.BootstrapAttemptsTotal.WithLabelValues("bad_request").Inc()
		case errors.Is(err, domain.ErrAdminExists):
			metrics.BootstrapAttemptsTotal.WithLabelValues("exists").Inc()
		default:
			metrics.BootstrapAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.BootstrapAttemptsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "admin created"})
}
