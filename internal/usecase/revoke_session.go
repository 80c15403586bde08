package usecase

import (
	"context"
	"log/slog"

	"herald-hub/internal/domain"
)

// RevokeSession destroys a session without a backend call. It backs the
// internal ops endpoint for explicit invalidation (compromised browser,
// offboarded account).
type RevokeSession struct {
	store  domain.SessionStore
	cache  domain.SessionCache
	logger *slog.Logger
}

// NewRevokeSession creates a new RevokeSession usecase.
func NewRevokeSession(s domain.SessionStore, c domain.SessionCache, l *slog.Logger) *RevokeSession {
	return &RevokeSession{store: s, cache: c, logger: l}
}

// Execute removes the session from the store and cache. Revoking an
// unknown session succeeds; the end state is the same.
func (uc *RevokeSession) Execute(ctx context.Context, sessionID string) error {
	if err := uc.store.Clear(ctx, sessionID); err != nil {
		return err
	}
	uc.cache.Delete(sessionID)
	uc.logger.InfoContext(ctx, "session revoked", "session_id", sessionID)
	return nil
}
