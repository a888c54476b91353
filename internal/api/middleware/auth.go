package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/api/metrics"
	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

// SessionResolver resolves a session id to its session and owning user.
// Satisfied by the auth service.
type SessionResolver interface {
	Authenticate(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

// Context keys set by the session guards.
const (
	CtxUser      = "user"
	CtxRole      = "role"
	CtxClientID  = "client_id"
	CtxSessionID = "session_id"
)

// Session is the API authorizer: it validates the session cookie and injects
// the resolved identity into the request context. Data endpoints get a plain
// 401 when the session is missing or expired; the blank cookie is written
// alongside so stale browser state clears itself. When validation renewed
// the session, the refreshed cookie is written before the handler runs.
func Session(auth SessionResolver, codec cookie.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessionIDFromRequest(c)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			start := time.Now()
			session, user, err := auth.Authenticate(c.Request().Context(), id)
			metrics.SessionValidationDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					metrics.SessionsValidatedTotal.WithLabelValues("rejected").Inc()
					c.Response().Header().Add(echo.HeaderSetCookie, codec.Blank())
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
				return err
			}

			if session.Fresh {
				metrics.SessionsValidatedTotal.WithLabelValues("renewed").Inc()
				c.Response().Header().Add(echo.HeaderSetCookie, codec.Session(session.ID))
			} else {
				metrics.SessionsValidatedTotal.WithLabelValues("valid").Inc()
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, user.Role)
			c.Set(CtxClientID, user.ClientID)
			c.Set(CtxSessionID, session.ID)

			return next(c)
		}
	}
}

// sessionIDFromRequest extracts the session cookie value from the request's
// Cookie header.
func sessionIDFromRequest(c echo.Context) string {
	header := c.Request().Header.Get("Cookie")
	if header == "" {
		return ""
	}
	return cookie.Parse(header)[cookie.SessionCookieName]
}
