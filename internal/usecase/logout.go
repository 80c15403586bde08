package usecase

import (
	"context"
	"errors"
	"log/slog"

	"herald-hub/internal/domain"
)

// LogoutResult reports where to go next and whether the backend half of
// the logout failed while the local half was still torn down.
type LogoutResult struct {
	RedirectTo string
	// BackendErr is set when the agency backend refused the logout but
	// the local session was cleared anyway (force-local mode).
	BackendErr error
}

// Logout revokes the backend token and tears down the local session.
// forceLocal decides the split-brain case: when the backend call fails,
// true clears the local session anyway, false leaves it intact and
// surfaces the error.
type Logout struct {
	gateway    domain.AuthGateway
	store      domain.SessionStore
	cache      domain.SessionCache
	forceLocal bool
	logger     *slog.Logger
}

// NewLogout creates a new Logout usecase.
func NewLogout(g domain.AuthGateway, s domain.SessionStore, c domain.SessionCache, forceLocal bool, l *slog.Logger) *Logout {
	return &Logout{gateway: g, store: s, cache: c, forceLocal: forceLocal, logger: l}
}

// Execute logs the session out. Logging out an already-absent session is
// a no-op success.
func (uc *Logout) Execute(ctx context.Context, sessionID string) (*LogoutResult, error) {
	sess, err := uc.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			uc.cache.Delete(sessionID)
			return &LogoutResult{RedirectTo: "/login"}, nil
		}
		return nil, err
	}

	if err := uc.gateway.Logout(ctx, sess.Token); err != nil {
		if !uc.forceLocal {
			uc.logger.WarnContext(ctx, "backend logout failed, keeping local session",
				"error", err, "user_id", sess.User.ID)
			return nil, err
		}

		uc.logger.WarnContext(ctx, "backend logout failed, clearing local session anyway",
			"error", err, "user_id", sess.User.ID)
		uc.teardown(ctx, sessionID)
		return &LogoutResult{RedirectTo: "/login", BackendErr: err}, nil
	}

	uc.teardown(ctx, sessionID)
	uc.logger.InfoContext(ctx, "logout succeeded", "user_id", sess.User.ID)
	return &LogoutResult{RedirectTo: "/login"}, nil
}

func (uc *Logout) teardown(ctx context.Context, sessionID string) {
	if err := uc.store.Clear(ctx, sessionID); err != nil {
		uc.logger.ErrorContext(ctx, "failed to clear session store", "error", err)
	}
	uc.cache.Delete(sessionID)
}
