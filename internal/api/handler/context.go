package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/api/middleware"
	"github.com/adpilot/agency-portal/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - client role requires a non-empty client_id; a client session without
//     one cannot be scoped to any data and is rejected with 401.
func ctxIdentity(c echo.Context) (role, clientID string, err error) {
	role, _ = c.Get(middleware.CtxRole).(string)
	if role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	clientID, _ = c.Get(middleware.CtxClientID).(string)
	if role == domain.RoleClient && clientID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "session missing client identity")
	}

	return role, clientID, nil
}
