package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"herald-hub/internal/domain"
	"herald-hub/internal/usecase"
	"herald-hub/utils/logger"
	appotel "herald-hub/utils/otel"
)

// SessionCookieName is the browser cookie carrying the signed session token.
const SessionCookieName = "herald_session"

const sessionContextKey = "herald.session"

// SessionFrom returns the session the guard attached to the request.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(sessionContextKey).(*domain.Session)
	return sess, ok
}

// guardResponse tells the frontend where to send the user instead.
type guardResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// RouteGuard gates route groups on the session cookie. A missing,
// unverifiable, or unresolvable cookie is treated as logged out rather
// than an error; the request never reaches the handler either way.
type RouteGuard struct {
	codec   domain.SessionTokenCodec
	resolve *usecase.ResolveSession
	logger  *slog.Logger
}

// NewRouteGuard creates a new route guard.
func NewRouteGuard(codec domain.SessionTokenCodec, resolve *usecase.ResolveSession, logger *slog.Logger) *RouteGuard {
	return &RouteGuard{codec: codec, resolve: resolve, logger: logger}
}

// Require returns middleware admitting only sessions whose role is in
// required. An empty required set admits any authenticated session.
func (g *RouteGuard) Require(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := g.sessionFor(c)

			var user *domain.User
			if sess != nil {
				user = &sess.User
			}

			switch usecase.Guard(required, user) {
			case usecase.DecisionAllow:
				c.Set(sessionContextKey, sess)
				if sess != nil {
					ctx := logger.WithUserID(c.Request().Context(), sess.User.ID)
					ctx = logger.WithSessionID(ctx, sess.ID)
					ctx = logger.WithRole(ctx, sess.User.Role.String())
					c.SetRequest(c.Request().WithContext(ctx))
				}
				return next(c)
			case usecase.DecisionRedirectToUnauthorized:
				g.recordDenied(c, "forbidden")
				g.logger.WarnContext(c.Request().Context(), "role rejected by guard",
					"user_id", sess.User.ID,
					"role", sess.User.Role.String(),
					"path", c.Path())
				return c.JSON(http.StatusForbidden, guardResponse{
					Error:    "insufficient role",
					Redirect: "/",
				})
			default:
				g.recordDenied(c, "unauthenticated")
				return c.JSON(http.StatusUnauthorized, guardResponse{
					Error:    "authentication required",
					Redirect: "/login",
				})
			}
		}
	}
}

func (g *RouteGuard) recordDenied(c echo.Context, reason string) {
	if m := appotel.Metrics; m != nil {
		m.GuardDeniedTotal.Add(c.Request().Context(), 1,
			metric.WithAttributes(attribute.String("reason", reason)))
	}
}

// sessionFor resolves the request's session. Any failure along the way
// yields nil: the guard decides on "no session", not on the failure.
func (g *RouteGuard) sessionFor(c echo.Context) *domain.Session {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	ctx := c.Request().Context()

	sessionID, err := g.codec.Verify(cookie.Value)
	if err != nil {
		g.logger.DebugContext(ctx, "rejected session cookie", "error", err)
		return nil
	}

	sess, err := g.resolve.Execute(ctx, sessionID)
	if err != nil {
		g.logger.DebugContext(ctx, "session did not resolve", "error", err)
		return nil
	}
	return sess
}
