package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := GenerateToken(42, TokenTypeAccess, time.Hour, testSecret)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := ParseToken(token, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token type is preserved", func(t *testing.T) {
		token, err := GenerateToken(7, TokenTypeRefresh, time.Hour, testSecret)
		assert.NoError(t, err)

		claims, err := ParseToken(token, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := GenerateToken(1, TokenTypeAccess, time.Hour, testSecret)
		assert.NoError(t, err)

		_, err = ParseToken(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateToken(1, TokenTypeAccess, -time.Minute, testSecret)
		assert.NoError(t, err)

		_, err = ParseToken(token, testSecret)
		assert.Error(t, err)
	})

	t.Run("empty secret errors", func(t *testing.T) {
		_, err := GenerateToken(1, TokenTypeAccess, time.Hour, "")
		assert.Error(t, err)

		_, err = ParseToken("whatever", "")
		assert.Error(t, err)
	})

	t.Run("garbage token errors", func(t *testing.T) {
		_, err := ParseToken("not.a.jwt", testSecret)
		assert.Error(t, err)
	})
}
