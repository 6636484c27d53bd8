// Package httputil maps domain errors to JSON error responses.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/branca/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleErrorGin maps a domain error to an HTTP status and writes it as JSON.
//
// Authentication failures and expired tokens share one response so a client
// cannot tell a tampered token from a stale one. Unknown errors are reported
// as 500 without details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var response ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		response = ErrorResponse{Error: "unauthorized", Message: "invalid or expired token"}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Error: "invalid_input", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		response = ErrorResponse{Error: "not_found", Message: "The requested resource was not found"}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		response = ErrorResponse{Error: "conflict", Message: "A conflict occurred with existing data"}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		response = ErrorResponse{Error: "forbidden", Message: "You don't have permission to access this resource"}

	default:
		statusCode = http.StatusInternalServerError
		response = ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 response for a body that is not valid JSON.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin writes a 422 response for a request that failed validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
