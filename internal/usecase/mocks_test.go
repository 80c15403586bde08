package usecase

import (
	"context"
	"sync"

	"herald-hub/internal/domain"
)

// mockGateway implements domain.AuthGateway for testing.
type mockGateway struct {
	token     string
	user      domain.User
	loginErr  error
	logoutErr error

	loginCalls  int
	logoutCalls int
	lastToken   string
}

func (m *mockGateway) Login(_ context.Context, _, _ string) (string, domain.User, error) {
	m.loginCalls++
	if m.loginErr != nil {
		return "", domain.User{}, m.loginErr
	}
	return m.token, m.user, nil
}

func (m *mockGateway) Logout(_ context.Context, token string) error {
	m.logoutCalls++
	m.lastToken = token
	return m.logoutErr
}

// mockStore implements domain.SessionStore for testing.
type mockStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	saveErr  error
	loads    int
}

func newMockStore() *mockStore {
	return &mockStore{sessions: make(map[string]domain.Session)}
}

func (m *mockStore) Save(_ context.Context, sessionID, token string, user domain.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = domain.Session{ID: sessionID, Token: token, User: user}
	return nil
}

func (m *mockStore) Load(_ context.Context, sessionID string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	sess, found := m.sessions[sessionID]
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (m *mockStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// mockCache implements domain.SessionCache for testing.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]domain.CachedSession
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.CachedSession)}
}

func (m *mockCache) Get(sessionID string) (*domain.CachedSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, found := m.entries[sessionID]
	if !found {
		return nil, false
	}
	return &entry, true
}

func (m *mockCache) Set(sessionID string, session domain.CachedSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = session
}

func (m *mockCache) Delete(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
}

// mockCodec implements domain.SessionTokenCodec for testing.
type mockCodec struct {
	issueErr error
}

func (m *mockCodec) Issue(sessionID string, _ domain.Role) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	return "cookie-for-" + sessionID, nil
}

func (m *mockCodec) Verify(token string) (string, error) {
	return token, nil
}
