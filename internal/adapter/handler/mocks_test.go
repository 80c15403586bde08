package handler

import (
	"context"
	"sync"

	"herald-hub/internal/domain"
)

// fakeGateway implements domain.AuthGateway and domain.ResourceFetcher.
type fakeGateway struct {
	token     string
	user      domain.User
	loginErr  error
	logoutErr error

	fetchBody   []byte
	fetchStatus int
	fetchErr    error
	lastFetch   string
}

func (f *fakeGateway) Login(_ context.Context, _, _ string) (string, domain.User, error) {
	if f.loginErr != nil {
		return "", domain.User{}, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeGateway) Logout(_ context.Context, _ string) error {
	return f.logoutErr
}

func (f *fakeGateway) Fetch(_ context.Context, _, backendPath string) ([]byte, int, error) {
	f.lastFetch = backendPath
	if f.fetchErr != nil {
		return nil, 0, f.fetchErr
	}
	return f.fetchBody, f.fetchStatus, nil
}

// fakeStore implements domain.SessionStore.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]domain.Session)}
}

func (f *fakeStore) Save(_ context.Context, sessionID, token string, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID] = domain.Session{ID: sessionID, Token: token, User: user}
	return nil
}

func (f *fakeStore) Load(_ context.Context, sessionID string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sess, found := f.sessions[sessionID]
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (f *fakeStore) Clear(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

// fakeCache implements domain.SessionCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.CachedSession
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.CachedSession)}
}

func (f *fakeCache) Get(sessionID string) (*domain.CachedSession, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, found := f.entries[sessionID]
	if !found {
		return nil, false
	}
	return &entry, true
}

func (f *fakeCache) Set(sessionID string, session domain.CachedSession) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[sessionID] = session
}

func (f *fakeCache) Delete(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, sessionID)
}

// fakeCodec implements domain.SessionTokenCodec with transparent tokens.
type fakeCodec struct {
	verifyErr error
}

func (f *fakeCodec) Issue(sessionID string, _ domain.Role) (string, error) {
	return "signed:" + sessionID, nil
}

func (f *fakeCodec) Verify(token string) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	if len(token) > 7 && token[:7] == "signed:" {
		return token[7:], nil
	}
	return "", domain.ErrTokenInvalid
}
