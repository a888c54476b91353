package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpilot/agency-portal/internal/api/metrics"
	"github.com/adpilot/agency-portal/internal/core/domain"
	"github.com/adpilot/agency-portal/internal/core/ports"
	"github.com/adpilot/agency-portal/internal/pkg/cookie"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	auth  ports.AuthService
	codec cookie.Codec
}

func NewAuthHandler(auth ports.AuthService, codec cookie.Codec) *AuthHandler {
	return &AuthHandler{auth: auth, codec: codec}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}

	session, _, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Origin:   c.RealIP(),
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			metrics.LoginAttemptsTotal.WithLabelValues("bad_request").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: "username and password required"})
		case errors.Is(err, domain.ErrRateLimited):
			metrics.LoginAttemptsTotal.WithLabelValues("rate_limited").Inc()
			return c.JSON(http.StatusTooManyRequests, messageResponse{Message: "too many attempts, try again later"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			// One shape for unknown user and wrong password.
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid credentials"})
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsIssuedTotal.Inc()

	c.Response().Header().Add(echo.HeaderSetCookie, h.codec.Session(session.ID))
	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// Logout invalidates the session and clears the cookie. It responds with the
// blank cookie even when no valid session was presented, so the browser
// state is always cleared.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  okResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// The blank cookie goes out unconditionally, even when the store fails.
	c.Response().Header().Add(echo.HeaderSetCookie, h.codec.Blank())

	header := c.Request().Header.Get("Cookie")
	if id := cookie.Parse(header)[cookie.SessionCookieName]; id != "" {
		if err := h.auth.Logout(c.Request().Context(), id); err != nil {
			return err
		}
		metrics.SessionsRevokedTotal.Inc()
	}

	return c.JSON(http.StatusOK, okResponse{OK: true})
}
