package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	t.Run("accepts jpeg and png", func(t *testing.T) {
		assert.Nil(t, validateUpload("photo.jpg", "image/jpeg", 1024))
		assert.Nil(t, validateUpload("photo.JPEG", "image/jpeg", 1024))
		assert.Nil(t, validateUpload("diagram.png", "image/png", 1024))
	})

	t.Run("rejects unsupported content types", func(t *testing.T) {
		appErr := validateUpload("movie.gif", "image/gif", 1024)
		assert.NotNil(t, appErr)
		assert.Equal(t, fiber.StatusUnprocessableEntity, appErr.StatusCode)
	})

	t.Run("rejects extension mismatch", func(t *testing.T) {
		appErr := validateUpload("photo.png", "image/jpeg", 1024)
		assert.NotNil(t, appErr)

		appErr = validateUpload("noextension", "image/png", 1024)
		assert.NotNil(t, appErr)
	})

	t.Run("enforces the size limit", func(t *testing.T) {
		assert.Nil(t, validateUpload("photo.jpg", "image/jpeg", maxFileSize))

		appErr := validateUpload("photo.jpg", "image/jpeg", maxFileSize+1)
		assert.NotNil(t, appErr)
		assert.Equal(t, fiber.StatusUnprocessableEntity, appErr.StatusCode)
	})
}
