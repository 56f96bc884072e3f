// Package handlers provides the HTTP handlers of the studio API.
//
// Handlers are transport-thin: they bind and validate input, call the
// application services, and translate results and service errors into HTTP
// responses. Every non-auth error is an ErrorResponse with a stable code.
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "error": "resource not found"
//	}
//
// Register and login keep the {success, message} envelope the frontend
// already parses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarumenyan/studio-backend/internal/http/middleware"
	"github.com/tarumenyan/studio-backend/internal/services"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message
	Error string `json:"error" example:"resource not found"`
}

// SuccessResponse is returned by deletes and other body-less mutations.
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
}

// fail aborts the request with an ErrorResponse. 5xx are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("error", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: middleware.GetRequestID(c),
		Code:      code,
		Error:     msg,
	})
}

// Fail is the exported variant of fail for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps a service error onto a response. Errors that are not one of
// the service sentinels are persistence failures and surface verbatim as 500
// with the given code.
func failErr(c *gin.Context, err error, code string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, ve.Msg)
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "resource not found")
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrChatbotUnavailable):
		fail(c, http.StatusServiceUnavailable, ErrCodeChatbotUnavailable, "chatbot is unavailable")
	default:
		fail(c, http.StatusInternalServerError, code, err.Error())
	}
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// deleted writes the {success:true} body of a delete.
func deleted(c *gin.Context) {
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}
