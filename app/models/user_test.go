package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	t.Run("valid user gets a hashed password", func(t *testing.T) {
		user, err := CreateUser("jake", "jake@jake.jake", "secret123")
		assert.NoError(t, err)
		assert.Equal(t, "jake", user.Username)
		assert.NotEqual(t, "secret123", user.Password)
		assert.True(t, user.CheckPassword("secret123"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		_, err := CreateUser("jake", "not-an-email", "secret123")
		assert.Error(t, err)
	})

	t.Run("short username is rejected", func(t *testing.T) {
		_, err := CreateUser("ab", "jake@jake.jake", "secret123")
		assert.Error(t, err)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := CreateUser("jake", "jake@jake.jake", "abc")
		assert.Error(t, err)
	})
}

func TestSetPassword(t *testing.T) {
	user, err := CreateUser("jake", "jake@jake.jake", "secret123")
	assert.NoError(t, err)

	oldHash := user.Password
	assert.NoError(t, user.SetPassword("newsecret"))
	assert.NotEqual(t, oldHash, user.Password)
	assert.True(t, user.CheckPassword("newsecret"))
	assert.False(t, user.CheckPassword("secret123"))
}
