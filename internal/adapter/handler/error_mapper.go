package handler

import (
	"errors"
	"net/http"

	"herald-hub/internal/domain"

	"github.com/labstack/echo/v4"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")

	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrTokenInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")

	case errors.Is(err, domain.ErrUnknownRole):
		return echo.NewHTTPError(http.StatusForbidden, "account role not recognized")

	case errors.Is(err, domain.ErrAgencyUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "agency backend unavailable")

	case errors.Is(err, domain.ErrTokenGeneration),
		errors.Is(err, domain.ErrSessionSecretWeak):
		return echo.NewHTTPError(http.StatusInternalServerError, "session issue error")

	case errors.Is(err, domain.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
