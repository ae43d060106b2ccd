package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/config"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "staff",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	identity, err := ParseToken(cfg, signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, "staff", identity.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ParseToken(cfg, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": float64(42),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := ParseToken(cfg, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRequiresSubject(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := ParseToken(cfg, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}

	_, err := ParseToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
