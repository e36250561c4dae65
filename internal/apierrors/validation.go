package apierrors

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationError builds a 400 error naming every field that failed binding,
// using the wire (snake_case) field names clients send.
func ValidationError(validationErrs validator.ValidationErrors) *APIError {
	apiErr := BadRequest(CodeInvalidInput, validationMessage(validationErrs))
	apiErr.Err = validationErrs
	return apiErr
}

func validationMessage(validationErrs validator.ValidationErrors) string {
	switch len(validationErrs) {
	case 0:
		return "Invalid request"
	case 1:
		return fieldMessage(validationErrs[0])
	}

	parts := make([]string, len(validationErrs))
	for i, fieldErr := range validationErrs {
		parts[i] = fieldMessage(fieldErr)
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

func fieldMessage(fieldErr validator.FieldError) string {
	name := wireName(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return name + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fieldErr.Tag())
	}
}

// wireName turns a Go field name such as TweetText into tweet_text.
func wireName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
