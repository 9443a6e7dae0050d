// Package errors provides custom error types for the TLO chat service client.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrNoAPIKey             = errors.New("no API key configured")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrEmptyMessage         = errors.New("message is empty and has no attachment")
	ErrSendInFlight         = errors.New("a send is still in flight for this conversation")
	ErrInvalidResponse      = errors.New("invalid response format")
)

// ValidationError rejects malformed input before any network activity
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// APIError represents a gateway request failure
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
	Body       string // truncated response body for diagnostics
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// NewAPIErrorWithBody creates an APIError carrying the response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	const maxBody = 4096
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return &APIError{StatusCode: statusCode, Endpoint: endpoint, Message: message, Body: body}
}

// TimeoutError represents a gateway call that exceeded its deadline
type TimeoutError struct {
	Endpoint string
}

func (e *TimeoutError) Error() string {
	if e.Endpoint == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request to %s timed out", e.Endpoint)
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(endpoint string) *TimeoutError {
	return &TimeoutError{Endpoint: endpoint}
}

// NetworkError wraps a transport-level failure
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error at %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError creates a new NetworkError
func NewNetworkError(endpoint string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Err: err}
}

// ParseError represents a malformed gateway payload
type ParseError struct {
	Message string
	Path    string // JSON path that failed, when known
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsValidationError reports whether err is a pre-network input rejection
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTimeoutError reports whether err is a deadline expiry
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// GetHTTPStatus extracts an HTTP status code from err, or 0
func GetHTTPStatus(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
