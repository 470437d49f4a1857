package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJwtService(t *testing.T) {
	// Setup
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	secretKey := base64.URLEncoding.EncodeToString(bytes)
	issuer := "testIssuer"

	svc, err := NewJwtService(secretKey, issuer)
	require.NoError(t, err)

	t.Run("Rejects an empty secret", func(t *testing.T) {
		_, err := NewJwtService("", issuer)
		assert.ErrorIs(t, err, ErrEmptySecretKey)
	})

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		token, err := svc.Generate("cli", map[string]any{"role": "admin"}, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "cli", claims["sub"])
		assert.Equal(t, issuer, claims["iss"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("Registered claims win over extra claims", func(t *testing.T) {
		token, err := svc.Generate("cli", map[string]any{"iss": "someone-else", "sub": "x"}, time.Minute)
		require.NoError(t, err)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "cli", claims["sub"])
		assert.Equal(t, issuer, claims["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate("cli", nil, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token from another issuer", func(t *testing.T) {
		other, err := NewJwtService(secretKey, "otherIssuer")
		require.NoError(t, err)

		token, err := other.Generate("cli", nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidIssuer)
	})

	t.Run("Decode token signed with another key", func(t *testing.T) {
		other, err := NewJwtService("another-secret", issuer)
		require.NoError(t, err)

		token, err := other.Generate("cli", nil, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})
}
