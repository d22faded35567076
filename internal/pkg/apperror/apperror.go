package apperror

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the typed error carried through handlers and mapped to the
// uniform envelope by ErrorHandler.
type AppError struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"-"`
	Message    string       `json:"-"`
	Details    []FieldError `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidation(message string, details []FieldError) *AppError {
	return &AppError{StatusCode: fiber.StatusUnprocessableEntity, Code: "unprocessable_entity", Message: message, Details: details}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusUnauthorized, Code: "unauthorized", Message: message}
}

// NewNotFound covers both missing resources and ownership mismatches.
// Ownership-scoped lookups deliberately do not disambiguate the two.
func NewNotFound(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusNotFound, Code: "not_found", Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusConflict, Code: "conflict", Message: message}
}

func NewBadRequest(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Code: "bad_request", Message: message}
}

func NewInternal(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusInternalServerError, Code: "internal_server_error", Message: message}
}

// FromDBError maps persistence failures to the error taxonomy: record-not-found
// becomes 404, uniqueness violations become 409, everything else 500.
func FromDBError(err error, notFoundMessage string) *AppError {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound(notFoundMessage)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return NewConflict("Duplicate entry")
	}
	return NewInternal("Database error")
}

// ErrorHandler is the global fiber error handler producing the uniform
// envelope {timestamp, statusCode, error, message, details?}. Unknown errors
// surface as generic internal errors; no stack traces leak.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			appErr = &AppError{StatusCode: fiberErr.Code, Code: codeForStatus(fiberErr.Code), Message: fiberErr.Message}
		} else {
			appErr = NewInternal("Internal server error")
		}
	}

	body := fiber.Map{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"statusCode": appErr.StatusCode,
		"error":      appErr.Code,
		"message":    appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	return c.Status(appErr.StatusCode).JSON(body)
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusConflict:
		return "conflict"
	case fiber.StatusUnprocessableEntity:
		return "unprocessable_entity"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	}
	return "internal_server_error"
}
