// Package handlers provides the HTTP handler implementations for the public
// API. This file defines the shared response utilities: a structured error
// envelope and helpers for consistent success responses.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "recipe not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// RequestID correlates server logs and client errors.
	RequestID string `json:"request_id,omitempty"`
	// Code is a stable, machine-readable string (see errors.go constants).
	Code string `json:"code"`
	// Message is human-readable and safe to show to users.
	Message string `json:"message"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail for use outside this package
// (router fallbacks such as NoRoute/NoMethod).
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a JSON success response with the given status and body.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an empty 204 response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
