// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response.
// Client-facing messages never include secrets, tokens, or upstream payloads beyond
// a sanitized summary; the full error chain is only logged server-side.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{
			Error: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		errorResponse = ErrorResponse{
			Error: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{
			Error: "Authentication required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{
			Error: "Forbidden",
		}

	case apperrors.Is(err, apperrors.ErrMisconfigured):
		// Never expose which configuration value is missing.
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error: "Server configuration error",
		}

	case apperrors.Is(err, apperrors.ErrUpstream):
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error:   "Upstream request failed",
			Details: sanitizedDetails(err),
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{
			Error: "An internal error occurred",
		}
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Error(),
	})
}

// HandleValidationErrorGin writes a 400 Bad Request response for validation errors.
// Validation messages are safe to describe to the client.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Error(),
	})
}

// sanitizedDetails extracts a short message from an upstream error chain,
// stripping the ErrUpstream sentinel prefix added by Wrap.
func sanitizedDetails(err error) string {
	var upstream *apperrors.UpstreamMessage
	if apperrors.As(err, &upstream) {
		return upstream.Message
	}
	return ""
}
