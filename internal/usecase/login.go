package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"herald-hub/internal/domain"
	"herald-hub/internal/routes"
)

// LoginResult holds everything the handler needs after a successful
// credential exchange.
type LoginResult struct {
	SessionID  string
	Cookie     string
	User       domain.User
	RedirectTo string
}

// Login exchanges credentials with the agency backend and, only on
// success, creates the durable session and its cookie. A failed attempt
// leaves any pre-existing session untouched.
//
// Each successful login mints an independent session: a re-login from a
// browser that already holds a session does not clear the earlier one,
// which stays valid until logout, revocation, or TTL expiry. Concurrent
// sessions per account are the intended behavior.
type Login struct {
	gateway domain.AuthGateway
	store   domain.SessionStore
	cache   domain.SessionCache
	codec   domain.SessionTokenCodec
	logger  *slog.Logger
}

// NewLogin creates a new Login usecase.
func NewLogin(g domain.AuthGateway, s domain.SessionStore, c domain.SessionCache, codec domain.SessionTokenCodec, l *slog.Logger) *Login {
	return &Login{gateway: g, store: s, cache: c, codec: codec, logger: l}
}

// Execute performs the login flow and returns the new session.
func (uc *Login) Execute(ctx context.Context, username, password string) (*LoginResult, error) {
	token, user, err := uc.gateway.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	// The gateway validates the role, but the landing lookup is what
	// actually binds it to a dashboard; an unmapped role stops here,
	// before anything is persisted.
	redirectTo, ok := routes.Landing(user.Role)
	if !ok {
		return nil, domain.ErrUnknownRole
	}

	sessionID := uuid.NewString()
	if err := uc.store.Save(ctx, sessionID, token, user); err != nil {
		uc.logger.ErrorContext(ctx, "failed to persist session", "error", err, "user_id", user.ID)
		return nil, err
	}
	uc.cache.Set(sessionID, domain.CachedSession{Token: token, User: user})

	cookie, err := uc.codec.Issue(sessionID, user.Role)
	if err != nil {
		// Roll the half-created session back; a session nobody can
		// reference is dead weight in the store.
		_ = uc.store.Clear(ctx, sessionID)
		uc.cache.Delete(sessionID)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "login succeeded",
		"user_id", user.ID,
		"role", user.Role.String(),
		"redirect_to", redirectTo)

	return &LoginResult{
		SessionID:  sessionID,
		Cookie:     cookie,
		User:       user,
		RedirectTo: redirectTo,
	}, nil
}
