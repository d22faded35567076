package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDBError(t *testing.T) {
	t.Run("record not found maps to 404", func(t *testing.T) {
		appErr := FromDBError(gorm.ErrRecordNotFound, "Article not found")
		assert.Equal(t, fiber.StatusNotFound, appErr.StatusCode)
		assert.Equal(t, "Article not found", appErr.Message)
	})

	t.Run("duplicate key maps to 409", func(t *testing.T) {
		appErr := FromDBError(gorm.ErrDuplicatedKey, "ignored")
		assert.Equal(t, fiber.StatusConflict, appErr.StatusCode)
	})

	t.Run("anything else maps to 500", func(t *testing.T) {
		appErr := FromDBError(errors.New("connection reset"), "ignored")
		assert.Equal(t, fiber.StatusInternalServerError, appErr.StatusCode)
		assert.Equal(t, "Database error", appErr.Message)
	})
}

func TestErrorHandler(t *testing.T) {
	newApp := func(handler fiber.Handler) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
		app.Get("/boom", handler)
		return app
	}

	doRequest := func(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	t.Run("app error produces the envelope", func(t *testing.T) {
		app := newApp(func(c *fiber.Ctx) error {
			return NewNotFound("Article not found")
		})

		status, body := doRequest(t, app)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, float64(fiber.StatusNotFound), body["statusCode"])
		assert.Equal(t, "not_found", body["error"])
		assert.Equal(t, "Article not found", body["message"])
		assert.NotEmpty(t, body["timestamp"])
		assert.NotContains(t, body, "details")
	})

	t.Run("validation details are included", func(t *testing.T) {
		app := newApp(func(c *fiber.Ctx) error {
			return NewValidation("Invalid input", []FieldError{
				{Field: "email", Message: "must be a valid email"},
			})
		})

		status, body := doRequest(t, app)
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
		assert.Equal(t, "unprocessable_entity", body["error"])

		details, ok := body["details"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, details, 1)
	})

	t.Run("unknown errors become generic 500s", func(t *testing.T) {
		app := newApp(func(c *fiber.Ctx) error {
			return errors.New("secret internal detail")
		})

		status, body := doRequest(t, app)
		assert.Equal(t, fiber.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", body["message"])
	})

	t.Run("fiber errors keep their status", func(t *testing.T) {
		app := newApp(func(c *fiber.Ctx) error {
			return fiber.ErrMethodNotAllowed
		})

		status, body := doRequest(t, app)
		assert.Equal(t, fiber.StatusMethodNotAllowed, status)
		assert.Equal(t, "method_not_allowed", body["error"])
	})
}
