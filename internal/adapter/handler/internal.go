package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"herald-hub/internal/usecase"
	appotel "herald-hub/utils/otel"
)

// InternalHandler handles internal service-to-service requests.
type InternalHandler struct {
	revoke   *usecase.RevokeSession
	validate *validator.Validate
}

// NewInternalHandler creates a new internal handler.
func NewInternalHandler(revoke *usecase.RevokeSession) *InternalHandler {
	return &InternalHandler{revoke: revoke, validate: validator.New()}
}

// revokeRequest identifies the session to destroy.
type revokeRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// revokeResponse acknowledges the revocation.
type revokeResponse struct {
	OK bool `json:"ok"`
}

// HandleRevoke destroys a session without touching the agency backend.
// Operators use it when a browser or account is compromised.
func (h *InternalHandler) HandleRevoke(c echo.Context) error {
	ctx := c.Request().Context()

	var req revokeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed revoke request")
	}
	if err := h.validate.Struct(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sessionId is required")
	}

	if err := h.revoke.Execute(ctx, req.SessionID); err != nil {
		slog.ErrorContext(ctx, "failed to revoke session", "error", err, "remote_addr", c.RealIP())
		return mapDomainError(err)
	}

	if m := appotel.Metrics; m != nil {
		m.SessionsRevoked.Add(ctx, 1)
	}

	slog.InfoContext(ctx, "session revoked via internal endpoint", "remote_addr", c.RealIP())
	return c.JSON(http.StatusOK, revokeResponse{OK: true})
}
