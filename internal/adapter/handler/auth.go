package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"herald-hub/internal/domain"
	"herald-hub/internal/usecase"
	"herald-hub/middleware"
	appotel "herald-hub/utils/otel"
)

// AuthHandler handles the login and logout endpoints.
type AuthHandler struct {
	login     *usecase.Login
	logout    *usecase.Logout
	codec     domain.SessionTokenCodec
	cookieTTL time.Duration
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler. cookieTTL bounds the
// browser cookie; the signed token inside carries its own expiry.
func NewAuthHandler(login *usecase.Login, logout *usecase.Logout, codec domain.SessionTokenCodec, cookieTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		login:     login,
		logout:    logout,
		codec:     codec,
		cookieTTL: cookieTTL,
		validate:  validator.New(),
		logger:    logger,
	}
}

// loginRequest is the credential payload from the login form.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse tells the frontend where to land after login.
type loginResponse struct {
	OK         bool        `json:"ok"`
	User       domain.User `json:"user"`
	RedirectTo string      `json:"redirectTo"`
}

// logoutResponse mirrors loginResponse for the logout flow.
// BackendError is set when the local session was cleared but the agency
// backend refused the token revocation; the frontend surfaces it to the
// user instead of pretending the logout was clean.
type logoutResponse struct {
	OK           bool   `json:"ok"`
	RedirectTo   string `json:"redirectTo"`
	BackendError string `json:"backendError,omitempty"`
}

// HandleLogin processes POST /auth/login.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed login request")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	ctx := c.Request().Context()

	result, err := h.login.Execute(ctx, req.Username, req.Password)
	if err != nil {
		if m := appotel.Metrics; m != nil {
			m.LoginFailuresTotal.Add(ctx, 1)
		}
		return mapDomainError(err)
	}

	if m := appotel.Metrics; m != nil {
		m.LoginsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("role", result.User.Role.String())))
	}

	c.SetCookie(h.sessionCookie(result.Cookie, h.cookieTTL))

	return c.JSON(http.StatusOK, loginResponse{
		OK:         true,
		User:       result.User,
		RedirectTo: result.RedirectTo,
	})
}

// HandleLogout processes POST /auth/logout. A request without a usable
// session cookie is already logged out and succeeds.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := ""
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		id, err := h.codec.Verify(cookie.Value)
		if err != nil {
			h.logger.DebugContext(ctx, "discarding unverifiable cookie on logout", "error", err)
		} else {
			sessionID = id
		}
	}

	backendError := ""
	if sessionID != "" {
		result, err := h.logout.Execute(ctx, sessionID)
		if err != nil {
			return mapDomainError(err)
		}
		if result.BackendErr != nil {
			h.logger.WarnContext(ctx, "logout completed locally only", "error", result.BackendErr)
			backendError = result.BackendErr.Error()
		}
	}

	// Expire the cookie regardless; the browser ends up logged out.
	c.SetCookie(h.sessionCookie("", -time.Hour))

	return c.JSON(http.StatusOK, logoutResponse{
		OK:           true,
		RedirectTo:   "/login",
		BackendError: backendError,
	})
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
