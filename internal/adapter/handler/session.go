package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"herald-hub/internal/domain"
	"herald-hub/internal/usecase"
	"herald-hub/middleware"
)

// SessionHandler handles /session, the frontend's rehydration endpoint.
// The response never includes the backend bearer token; that stays
// server-side for the lifetime of the session.
type SessionHandler struct {
	resolve *usecase.ResolveSession
	codec   domain.SessionTokenCodec
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(resolve *usecase.ResolveSession, codec domain.SessionTokenCodec) *SessionHandler {
	return &SessionHandler{resolve: resolve, codec: codec}
}

// sessionInfo represents the session object in the response.
type sessionInfo struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

// sessionResponse represents the JSON response structure.
type sessionResponse struct {
	OK      bool        `json:"ok"`
	User    domain.User `json:"user"`
	Session sessionInfo `json:"session"`
}

// Handle processes GET /session and returns the current user snapshot.
func (h *SessionHandler) Handle(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "session cookie not found")
	}

	sessionID, err := h.codec.Verify(cookie.Value)
	if err != nil {
		return mapDomainError(err)
	}

	sess, err := h.resolve.Execute(c.Request().Context(), sessionID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		OK:   true,
		User: sess.User,
		Session: sessionInfo{
			ID:     sess.ID,
			Active: true,
		},
	})
}
