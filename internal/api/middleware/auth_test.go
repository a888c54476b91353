package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

type stubResolver struct {
	authenticateFn func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

func (s *stubResolver) Authenticate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	return s.authenticateFn(ctx, sessionID)
}

func testCodec() cookie.Codec {
	return cookie.Codec{TTL: 24 * time.Hour}
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestSession_NoCookie(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		authenticateFn: func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
			t.Fatalf("store must not be hit without a cookie")
			return nil, nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	err := Session(resolver, testCodec())(okHandler(&called))(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if called {
		t.Fatalf("handler must not run")
	}
}

func TestSession_InvalidSession(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		authenticateFn: func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrSessionNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	req.Header.Set("Cookie", "session=stale")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	err := Session(resolver, testCodec())(okHandler(&called))(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
	if called {
		t.Fatalf("handler must not run")
	}

	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.HasPrefix(setCookie, "session=;") {
		t.Fatalf("expected blank cookie on stale session, got %q", setCookie)
	}
}

func TestSession_ValidSession(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		authenticateFn: func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
			if sessionID != "sess123" {
				t.Fatalf("unexpected session id %q", sessionID)
			}
			session := &domain.Session{ID: sessionID, UserID: "u1"}
			user := &domain.User{ID: "u1", Role: domain.RoleClient, ClientID: "client_1"}
			return session, user, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/client/reports", nil)
	req.Header.Set("Cookie", "session=sess123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	if err := Session(resolver, testCodec())(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatalf("handler must run")
	}

	if got, _ := c.Get(CtxRole).(string); got != domain.RoleClient {
		t.Fatalf("role not injected, got %q", got)
	}
	if got, _ := c.Get(CtxClientID).(string); got != "client_1" {
		t.Fatalf("client id not injected, got %q", got)
	}
	if got, _ := c.Get(CtxSessionID).(string); got != "sess123" {
		t.Fatalf("session id not injected, got %q", got)
	}
	if rec.Header().Get(echo.HeaderSetCookie) != "" {
		t.Fatalf("no cookie rewrite expected for a non-renewed session")
	}
}

func TestSession_RenewedSessionRewritesCookie(t *testing.T) {
	e := echo.New()
	resolver := &stubResolver{
		authenticateFn: func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
			session := &domain.Session{ID: sessionID, UserID: "u1", Fresh: true}
			user := &domain.User{ID: "u1", Role: domain.RoleAdmin}
			return session, user, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	req.Header.Set("Cookie", "session=sess123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	if err := Session(resolver, testCodec())(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if !called {
		t.Fatalf("handler must run")
	}

	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.HasPrefix(setCookie, "session=sess123;") {
		t.Fatalf("expected refreshed session cookie, got %q", setCookie)
	}
}
