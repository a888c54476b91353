package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

type stubAuthService struct {
	loginFn        func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error)
	logoutFn       func(ctx context.Context, sessionID string) error
	authenticateFn func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
	createUserFn   func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) Authenticate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	return s.authenticateFn(ctx, sessionID)
}

func (s *stubAuthService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, input)
}

func testCodec() cookie.Codec {
	return cookie.Codec{TTL: 24 * time.Hour}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
			if input.Username != "alice" || input.Password != "secret" {
				t.Fatalf("unexpected args: %s %s", input.Username, input.Password)
			}
			if input.Origin == "" {
				t.Fatalf("expected caller origin to be forwarded")
			}
			return &domain.Session{ID: "sess123"}, &domain.User{Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.HasPrefix(setCookie, "session=sess123;") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}
	if !strings.Contains(setCookie, "HttpOnly") || !strings.Contains(setCookie, "SameSite=Lax") {
		t.Fatalf("missing cookie attributes: %q", setCookie)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["ok"] != true {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid credentials") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderSetCookie) != "" {
		t.Fatalf("no cookie should be set on failure")
	}
}

func TestAuthHandler_Login_RateLimited(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrRateLimited
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
			t.Fatalf("incomplete credentials must be rejected before the service")
			return nil, nil, nil
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*domain.Session, *domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_WithSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var invalidated string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			invalidated = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Cookie", "session=sess123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if invalidated != "sess123" {
		t.Fatalf("expected session sess123 invalidated, got %q", invalidated)
	}

	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.HasPrefix(setCookie, "session=;") {
		t.Fatalf("expected blank cookie, got %q", setCookie)
	}
	if !strings.Contains(setCookie, "Expires=") {
		t.Fatalf("blank cookie should carry a past expiry: %q", setCookie)
	}
}

func TestAuthHandler_Logout_StoreErrorStillClearsCookie(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			return fmt.Errorf("redis: connection refused")
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Cookie", "session=sess123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err == nil {
		t.Fatalf("expected store error to propagate")
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderSetCookie), "session=;") {
		t.Fatalf("blank cookie must be written even when invalidation fails")
	}
}

func TestAuthHandler_Logout_WithoutSession(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			t.Fatalf("should not be called without a cookie")
			return nil
		},
	}
	handler := NewAuthHandler(stub, testCodec())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderSetCookie), "session=;") {
		t.Fatalf("expected blank cookie even without a session")
	}
}
