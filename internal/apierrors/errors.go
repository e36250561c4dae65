package apierrors

import (
	"fmt"
	"net/http"
)

// Error codes returned to API clients
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeAIServiceError     = "AI_SERVICE_ERROR"
	CodeStoreError         = "STORE_ERROR"
	CodeEmptyTweet         = "EMPTY_TWEET"
	CodeEmptyTranscript    = "EMPTY_TRANSCRIPT"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeMediaNotFound      = "MEDIA_NOT_FOUND"
	CodeMalformedModelJSON = "MALFORMED_MODEL_OUTPUT"
)

// APIError is an error that carries the HTTP status and client-facing code.
// Message is safe to show to callers; Err holds the internal cause.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// BadRequest returns a 400 error
func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

// NotFound returns a 404 error
func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

// Conflict returns a 409 error
func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

// PayloadTooLarge returns a 413 error
func PayloadTooLarge(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusRequestEntityTooLarge, Code: code, Message: message}
}

// UnprocessableEntity returns a 422 error
func UnprocessableEntity(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusUnprocessableEntity, Code: code, Message: message, Err: err}
}

// ServiceUnavailable returns a 503 error wrapping the upstream failure
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError returns a sanitized 500 error - never exposes internal details
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
