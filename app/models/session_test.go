package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashRefreshToken(t *testing.T) {
	hash := HashRefreshToken("some-refresh-token")

	// sha256 Hexdarstellung, deterministisch
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashRefreshToken("some-refresh-token"))
	assert.NotEqual(t, hash, HashRefreshToken("another-token"))
	assert.NotContains(t, hash, "some-refresh-token")
}

func TestSessionIsExpired(t *testing.T) {
	active := &Session{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, active.IsExpired())

	expired := &Session{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, expired.IsExpired())
}
