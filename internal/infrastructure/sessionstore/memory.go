// Package sessionstore provides durable storage for session token/profile
// pairs. Two logical keys are kept per session; a session is only ever
// observed with both halves present.
package sessionstore

import (
	"context"
	"encoding/json"
	"sync"

	"herald-hub/internal/domain"
)

// record mirrors the two-key layout of the Redis store so both
// implementations share the same partial/corrupt handling.
type record struct {
	token   string
	rawUser []byte
}

// MemoryStore keeps sessions in process memory. It serves tests and
// single-node development; sessions do not survive a restart.
// Implements domain.SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]record
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]record)}
}

// Save writes both halves of the session under one lock, so no reader
// observes a token without its profile.
func (s *MemoryStore) Save(_ context.Context, sessionID, token string, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = record{token: token, rawUser: raw}
	return nil
}

// Load returns the stored session, or ErrSessionNotFound when either
// half is missing or the profile no longer deserializes.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	rec, found := s.sessions[sessionID]
	s.mu.RUnlock()

	if !found {
		return nil, domain.ErrSessionNotFound
	}

	sess, ok := decode(sessionID, rec)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Clear removes both halves of the session.
func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// decode validates a raw record into a Session. A missing half, broken
// JSON, or a role outside the closed set all count as no session.
func decode(sessionID string, rec record) (*domain.Session, bool) {
	if rec.token == "" || len(rec.rawUser) == 0 {
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(rec.rawUser, &user); err != nil {
		return nil, false
	}
	if user.ID == "" || !user.Role.Valid() {
		return nil, false
	}

	return &domain.Session{ID: sessionID, Token: rec.token, User: user}, true
}
