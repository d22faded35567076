package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/khanh-pt/realworld/internal/pkg/apperror"
)

var validate = validator.New()

// CheckStruct validates a request DTO and converts failures into a 422
// AppError with one detail entry per offending field.
func CheckStruct(s interface{}) *apperror.AppError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.NewValidation("Validation failed", nil)
	}

	details := make([]apperror.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, apperror.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageForTag(fe),
		})
	}
	return apperror.NewValidation("Validation failed", details)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	}
	return "is invalid"
}
