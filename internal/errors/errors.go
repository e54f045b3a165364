// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrMisconfigured indicates a required server configuration value is absent.
	// Handlers must map it to a generic 500 without naming the missing variable.
	ErrMisconfigured = errors.New("server configuration error")

	// ErrUpstream indicates a call to the CRM or mail provider failed.
	ErrUpstream = errors.New("upstream error")
)

// UpstreamMessage carries the sanitized human-readable message returned by an
// upstream provider (e.g., the CRM's "Message" field). It never contains
// credentials or raw response bodies. It matches ErrUpstream via errors.Is.
type UpstreamMessage struct {
	// Operation names the failed call, e.g. "list interactions".
	Operation string
	// Message is the provider's sanitized error summary, safe to show to clients.
	Message string
}

// Error implements the error interface.
func (e *UpstreamMessage) Error() string {
	if e.Message == "" {
		return e.Operation + ": upstream error"
	}
	return e.Operation + ": upstream error: " + e.Message
}

// Unwrap makes UpstreamMessage match ErrUpstream in errors.Is checks.
func (e *UpstreamMessage) Unwrap() error {
	return ErrUpstream
}

// NewUpstream creates an upstream error with a sanitized provider message.
func NewUpstream(operation, message string) error {
	return &UpstreamMessage{Operation: operation, Message: message}
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
