package token

import (
	"errors"
	"fmt"
	"time"

	"herald-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// minSecretLen guards against HS256 keys short enough to brute-force.
const minSecretLen = 32

// JWTConfig holds session cookie signing configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// sessionClaims are the claims carried by the hub's session cookie.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies the hub's session cookie value. The cookie
// carries only the session ID and role; the bearer token never leaves
// the server side. Implements domain.SessionTokenCodec.
type JWTCodec struct {
	cfg JWTConfig
}

// NewJWTCodec creates a new session cookie codec.
func NewJWTCodec(cfg JWTConfig) (*JWTCodec, error) {
	if len(cfg.Secret) < minSecretLen {
		return nil, domain.ErrSessionSecretWeak
	}
	return &JWTCodec{cfg: cfg}, nil
}

// Issue generates a signed cookie value for the given session.
func (c *JWTCodec) Issue(sessionID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.cfg.Issuer,
			Audience:  jwt.ClaimStrings{c.cfg.Audience},
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}

// Verify checks the cookie signature and returns the session ID.
func (c *JWTCodec) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(c.cfg.Secret), nil
		},
		jwt.WithIssuer(c.cfg.Issuer),
		jwt.WithAudience(c.cfg.Audience),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
