package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/admin/login"

// PageGuard gates server-rendered pages. Page routes never show raw errors:
// any auth failure, wrong role included, redirects to the login page with
// the originally requested path preserved in the redirect query parameter so
// the user can return after authenticating.
func PageGuard(auth SessionResolver, codec cookie.Codec, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := sessionIDFromRequest(c)
			if id == "" {
				return redirectLogin(c)
			}

			session, user, err := auth.Authenticate(c.Request().Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					c.Response().Header().Add(echo.HeaderSetCookie, codec.Blank())
				}
				return redirectLogin(c)
			}

			if session.Fresh {
				c.Response().Header().Add(echo.HeaderSetCookie, codec.Session(session.ID))
			}

			if user.Role != requiredRole {
				return redirectLogin(c)
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, user.Role)
			c.Set(CtxClientID, user.ClientID)
			c.Set(CtxSessionID, session.ID)

			return next(c)
		}
	}
}

// RequireSessionCookie is the cheap pre-check: it only tests for the
// presence of the session cookie, without a store lookup, so obviously
// anonymous page requests short-circuit early. It is never the sole gate:
// PageGuard still validates and authorizes behind it.
func RequireSessionCookie() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessionIDFromRequest(c) == "" {
				return redirectLogin(c)
			}
			return next(c)
		}
	}
}

func redirectLogin(c echo.Context) error {
	target := LoginPath + "?redirect=" + url.QueryEscape(c.Request().URL.RequestURI())
	return c.Redirect(http.StatusFound, target)
}
