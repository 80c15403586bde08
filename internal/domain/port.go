package domain

import "context"

// AuthGateway exchanges credentials and tokens with the agency backend.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, User, error)
	Logout(ctx context.Context, token string) error
}

// ResourceFetcher reads an opaque backend resource with a bearer token.
type ResourceFetcher interface {
	Fetch(ctx context.Context, token, backendPath string) (body []byte, status int, err error)
}

// SessionStore is the durable home of a session's token/profile pair.
// Load returns ErrSessionNotFound when either half is missing or corrupt.
type SessionStore interface {
	Save(ctx context.Context, sessionID, token string, user User) error
	Load(ctx context.Context, sessionID string) (*Session, error)
	Clear(ctx context.Context, sessionID string) error
}

// SessionCache provides read/write access to resolved session snapshots.
type SessionCache interface {
	Get(sessionID string) (*CachedSession, bool)
	Set(sessionID string, session CachedSession)
	Delete(sessionID string)
}

// SessionTokenCodec signs and verifies the hub's session cookie value.
type SessionTokenCodec interface {
	Issue(sessionID string, role Role) (string, error)
	Verify(token string) (sessionID string, err error)
}
