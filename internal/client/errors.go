// ABOUTME: Typed errors returned by the API client
// ABOUTME: Callers branch with errors.As to decide how a failure is surfaced

package client

import (
	"fmt"
	"strings"
)

// AuthError means the request could not be authenticated.
// After the transport's refresh path has run, this is terminal:
// the session is gone and the user must log in again.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication required"
	}
	return e.Message
}

// AuthorizationError means the caller is authenticated but lacks
// permission for the operation (HTTP 403).
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return e.Message
}

// ValidationError reports client-side input problems found before
// any request was issued. Fields maps field name to message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// APIError is any other non-2xx response, carrying the server's message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}
