package apierrors

import (
	"errors"
	"net/http"

	"triage-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON body of every API error
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError maps err and sends the sanitized body. Server-side
// failures are logged with the cause; client errors only with the mapped code.
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	apiErr := MapError(err)

	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error response", err)
	} else {
		logger.Info(ctx, "API error response: "+apiErr.Message)
	}
	respond(c, apiErr)
}

// RespondWithValidationError answers a failed ShouldBind call.
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		apiErr := ValidationError(validationErrs)
		logger.Info(ctx, "Validation failed: "+apiErr.Message)
		respond(c, apiErr)
		return
	}

	logger.InfoWithError(ctx, "Request binding failed", err)
	respond(c, BadRequest(CodeInvalidInput, "Invalid request format. Please check your JSON syntax."))
}

func respond(c *gin.Context, apiErr *APIError) {
	c.JSON(apiErr.StatusCode, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}
