package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

// ClientHandler handles admin-side client management.
type ClientHandler struct {
	clients ports.ClientService
}

func NewClientHandler(clients ports.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

type clientRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	CID   string `json:"cid,omitempty"`
	Notes string `json:"notes,omitempty"`
}

type clientResponse struct {
	Client *domain.Client `json:"client"`
}

type clientListResponse struct {
	Clients []domain.Client `json:"clients"`
}

type clientDetailResponse struct {
	Client  *domain.Client  `json:"client"`
	Reports []domain.Report `json:"reports"`
}

// List returns all clients, newest first.
//
// @Summary      List clients
// @Tags         admin
// @Produce      json
// @Success      200  {object}  clientListResponse
// @Router       /api/admin/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clients.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: clients})
}

// Create registers a new client.
//
// @Summary      Create a client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/admin/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	client, err := h.clients.CreateClient(c.Request().Context(), ports.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
		CID:   req.CID,
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, clientResponse{Client: client})
}

// Get returns one client together with its report history.
//
// @Summary      Get a client
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Client id"
// @Success      200  {object}  clientDetailResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/admin/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, reports, err := h.clients.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientDetailResponse{Client: client, Reports: reports})
}

// Update replaces a client's editable fields.
//
// @Summary      Update a client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Client details"
// @Success      200   {object}  clientResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	client, err := h.clients.UpdateClient(c.Request().Context(), ports.UpdateClientInput{
		ID:    c.Param("id"),
		Name:  req.Name,
		Email: req.Email,
		CID:   req.CID,
		Notes: req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientResponse{Client: client})
}
