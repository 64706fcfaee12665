// Package handlers defines the HTTP-layer error codes and the mapping from
// the domain failure taxonomy to HTTP responses.
//
// Every failure variant maps to a distinct, human-readable message and a
// stable machine-readable code; anything unrecognized falls back to a
// generic "something went wrong" rather than surfacing raw diagnostics.
package handlers

import (
	"net/http"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeUpstreamTimeout      = "upstream_timeout"
	ErrCodeUpstreamUnreachable  = "upstream_unreachable"
	ErrCodeUpstreamUnauthorized = "upstream_unauthorized"
	ErrCodeUpstreamQuota        = "upstream_quota_exceeded"
	ErrCodeUpstreamError        = "upstream_error"
	ErrCodeParseError           = "parse_error"
	ErrCodeStorageError         = "storage_error"
)

// failureResponse translates a domain failure into an HTTP status, a stable
// code, and a user-safe message.
func failureResponse(f domain.Failure) (status int, code, msg string) {
	switch v := f.(type) {
	case domain.NetworkFailure:
		switch v {
		case domain.NetworkTimeout:
			return http.StatusGatewayTimeout, ErrCodeUpstreamTimeout, "the recipe service took too long to respond"
		case domain.NetworkNoInternet:
			return http.StatusServiceUnavailable, ErrCodeUpstreamUnreachable, "could not reach the recipe service"
		case domain.NetworkUnauthorized:
			return http.StatusBadGateway, ErrCodeUpstreamUnauthorized, "the recipe service rejected our credentials"
		case domain.NetworkPaymentRequired:
			return http.StatusBadGateway, ErrCodeUpstreamQuota, "the recipe service quota is exhausted"
		case domain.NetworkNotFound:
			return http.StatusNotFound, ErrCodeNotFound, "recipe not found"
		default:
			return http.StatusBadGateway, ErrCodeUpstreamError, "something went wrong"
		}
	case domain.ParseFailure:
		return http.StatusBadGateway, ErrCodeParseError, "the recipe data could not be read"
	case domain.StorageFailure:
		if v == domain.StorageNotFound {
			return http.StatusNotFound, ErrCodeNotFound, "recipe not found"
		}
		return http.StatusInternalServerError, ErrCodeStorageError, "the recipe could not be cached"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "something went wrong"
	}
}
