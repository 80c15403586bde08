package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"herald-hub/internal/domain"
)

// ResolveSession rehydrates a session: cache first, then the durable
// store. It never calls the agency backend; the bearer token is trusted
// until a proxied call using it fails.
type ResolveSession struct {
	store  domain.SessionStore
	cache  domain.SessionCache
	group  singleflight.Group
	logger *slog.Logger
}

// NewResolveSession creates a new ResolveSession usecase.
func NewResolveSession(store domain.SessionStore, cache domain.SessionCache, logger *slog.Logger) *ResolveSession {
	return &ResolveSession{store: store, cache: cache, logger: logger}
}

// Execute returns the session for sessionID, or ErrSessionNotFound.
// Concurrent resolves of one session share a single store read.
func (uc *ResolveSession) Execute(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}

	if cached, found := uc.cache.Get(sessionID); found {
		return &domain.Session{ID: sessionID, Token: cached.Token, User: cached.User}, nil
	}

	v, err, _ := uc.group.Do(sessionID, func() (any, error) {
		sess, err := uc.store.Load(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		uc.cache.Set(sessionID, domain.CachedSession{Token: sess.Token, User: sess.User})
		return sess, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Session), nil
}
