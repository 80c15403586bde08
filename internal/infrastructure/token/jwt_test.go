package token

import (
	"errors"
	"testing"
	"time"

	"herald-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-valid-session-secret-32-chars-long"

func testCodec(t *testing.T, ttl time.Duration) *JWTCodec {
	t.Helper()

	codec, err := NewJWTCodec(JWTConfig{
		Secret:   testSecret,
		Issuer:   "herald-hub",
		Audience: "herald-frontend",
		TTL:      ttl,
	})
	require.NoError(t, err)
	return codec
}

func TestNewJWTCodec_WeakSecret(t *testing.T) {
	_, err := NewJWTCodec(JWTConfig{Secret: "short", Issuer: "herald-hub"})
	assert.True(t, errors.Is(err, domain.ErrSessionSecretWeak))
}

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := testCodec(t, 5*time.Minute)

	cookie, err := codec.Issue("session-abc", domain.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, cookie)

	sessionID, err := codec.Verify(cookie)
	assert.NoError(t, err)
	assert.Equal(t, "session-abc", sessionID)
}

func TestJWTCodec_Claims(t *testing.T) {
	codec := testCodec(t, 5*time.Minute)

	cookie, err := codec.Issue("session-abc", domain.RoleCustomer)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(cookie, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(*sessionClaims)
	assert.Equal(t, "session-abc", claims.Subject)
	assert.Equal(t, "Customer", claims.Role)
	assert.Equal(t, "herald-hub", claims.Issuer)
	assert.Contains(t, claims.Audience, "herald-frontend")
}

func TestJWTCodec_ExpiredCookie(t *testing.T) {
	codec := testCodec(t, -1*time.Minute) // Already expired

	cookie, err := codec.Issue("session-abc", domain.RoleDeliverer)
	require.NoError(t, err) // Generation succeeds

	_, err = codec.Verify(cookie)
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
}

func TestJWTCodec_TamperedSignature(t *testing.T) {
	codec := testCodec(t, 5*time.Minute)

	other, err := NewJWTCodec(JWTConfig{
		Secret:   "a-completely-different-secret-also-32-chars",
		Issuer:   "herald-hub",
		Audience: "herald-frontend",
		TTL:      5 * time.Minute,
	})
	require.NoError(t, err)

	cookie, err := other.Issue("session-abc", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = codec.Verify(cookie)
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
}

func TestJWTCodec_WrongIssuer(t *testing.T) {
	codec := testCodec(t, 5*time.Minute)

	foreign, err := NewJWTCodec(JWTConfig{
		Secret:   testSecret,
		Issuer:   "someone-else",
		Audience: "herald-frontend",
		TTL:      5 * time.Minute,
	})
	require.NoError(t, err)

	cookie, err := foreign.Issue("session-abc", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = codec.Verify(cookie)
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
}
