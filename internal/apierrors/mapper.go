package apierrors

import (
	"errors"
	"strings"

	"triage-server/internal/llmjson"
	"triage-server/internal/store"
	ticketsProcessor "triage-server/internal/tickets/processor"
	"triage-server/internal/tweets/media"
	tweetsProcessor "triage-server/internal/tweets/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Tweet classification errors
	case errors.Is(err, tweetsProcessor.ErrEmptyTweet):
		return BadRequest(CodeEmptyTweet, "Tweet text is required")

	// Media library errors
	case errors.Is(err, media.ErrUnsupportedMedia):
		return BadRequest(CodeUnsupportedMedia, "File type not allowed. Allowed: png, jpg, jpeg, gif, mp4, mov, avi")

	case errors.Is(err, media.ErrFileTooLarge):
		return PayloadTooLarge(CodeFileTooLarge, "File exceeds the upload size limit")

	case errors.Is(err, media.ErrMediaNotFound):
		return NotFound(CodeMediaNotFound, "Media file not found")

	// Ticket derivation errors
	case errors.Is(err, ticketsProcessor.ErrEmptyTranscript):
		return BadRequest(CodeEmptyTranscript, "Transcript has no entries")

	case errors.Is(err, ticketsProcessor.ErrTicketNotFound):
		return NotFound(CodeNotFound, "Ticket not found")

	case errors.Is(err, llmjson.ErrMalformedModelOutput):
		return UnprocessableEntity(CodeMalformedModelJSON, "The model returned an unreadable response", err)

	// Store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	case errors.Is(err, store.ErrAlreadyExists):
		return Conflict(CodeConflict, "Resource already exists")

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	// AI service errors (OpenAI, Gemini)
	if strings.Contains(errMsg, "openai") || strings.Contains(errMsg, "gemini") || strings.Contains(errMsg, "ai service") {
		return ServiceUnavailable(
			CodeAIServiceError,
			"AI service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Document store errors (Firestore)
	if strings.Contains(errMsg, "firestore") || strings.Contains(errMsg, "document store") {
		return ServiceUnavailable(
			CodeStoreError,
			"Document store is temporarily unavailable. Please try again later.",
			err,
		)
	}

	return InternalError(err)
}
