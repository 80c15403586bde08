package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"herald-hub/internal/domain"
	"herald-hub/middleware"
	appotel "herald-hub/utils/otel"
)

// DashboardHandler proxies dashboard sub-view reads to the agency
// backend using the session's bearer token. The guard runs first, so a
// request reaching a proxy handler always carries a session.
type DashboardHandler struct {
	fetcher domain.ResourceFetcher
	logger  *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(fetcher domain.ResourceFetcher, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{fetcher: fetcher, logger: logger}
}

// Proxy returns a handler that fetches backendPath on behalf of the
// session. Backend status codes pass through untouched, including 401
// when the bearer token has expired upstream.
func (h *DashboardHandler) Proxy(backendPath string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		sess, ok := middleware.SessionFrom(c)
		if !ok {
			h.logger.ErrorContext(ctx, "proxy reached without session", "path", c.Path())
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}

		start := time.Now()
		body, status, err := h.fetcher.Fetch(ctx, sess.Token, backendPath)
		if m := appotel.Metrics; m != nil {
			m.ProxyDuration.Record(ctx, time.Since(start).Seconds(),
				metric.WithAttributes(attribute.String("backend_path", backendPath)))
		}
		if err != nil {
			h.logger.ErrorContext(ctx, "backend fetch failed",
				"error", err,
				"backend_path", backendPath,
				"user_id", sess.User.ID)
			return mapDomainError(err)
		}

		return c.JSONBlob(status, body)
	}
}
