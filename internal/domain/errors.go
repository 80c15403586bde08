package domain

import "errors"

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownRole        = errors.New("unknown role")
)

// Token errors.
var (
	ErrTokenGeneration   = errors.New("token generation failed")
	ErrTokenInvalid      = errors.New("session token invalid")
	ErrSessionSecretWeak = errors.New("session secret too weak")
)

// External service errors.
var (
	ErrAgencyUnavailable = errors.New("agency backend unavailable")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
