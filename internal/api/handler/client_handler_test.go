package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
)

type stubClientService struct {
	createFn func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error)
	getFn    func(ctx context.Context, id string) (*domain.Client, []domain.Report, error)
	updateFn func(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error)
	listFn   func(ctx context.Context) ([]domain.Client, error)
}

func (s *stubClientService) CreateClient(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, input)
}

func (s *stubClientService) GetClient(ctx context.Context, id string) (*domain.Client, []domain.Report, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) UpdateClient(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, input)
}

func (s *stubClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.listFn(ctx)
}

func TestClientHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubClientService{
		createFn: func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
			if input.Name != "Acme" || input.CID != "cid-9" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Client{ID: "client_1", Name: input.Name, CID: input.CID}, nil
		},
	}
	handler := NewClientHandler(stub)

	body := strings.NewReader(`{"name":"Acme","cid":"cid-9"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/clients", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestClientHandler_Create_MissingName(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubClientService{
		createFn: func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
			t.Fatalf("a nameless client must be rejected before the service")
			return nil, nil
		},
	}
	handler := NewClientHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/clients", strings.NewReader(`{"email":"a@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "name is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestClientHandler_Update_InvalidEmail(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubClientService{
		updateFn: func(ctx context.Context, input ports.UpdateClientInput) (*domain.Client, error) {
			t.Fatalf("an invalid email must be rejected before the service")
			return nil, nil
		},
	}
	handler := NewClientHandler(stub)

	body := strings.NewReader(`{"name":"Acme","email":"not-an-email"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/admin/clients/client_1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("client_1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
