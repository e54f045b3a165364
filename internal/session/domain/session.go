// Package domain defines entities and errors for dashboard session handling.
package domain

import (
	"github.com/lovelifenow/admin-api/internal/errors"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "auth_token"

// Login errors.
var (
	// ErrMissingPassword indicates the login request carried no password.
	ErrMissingPassword = errors.Wrap(errors.ErrInvalidInput, "Password is required")

	// ErrInvalidPassword indicates the submitted password did not match.
	ErrInvalidPassword = errors.Wrap(errors.ErrUnauthorized, "Invalid password")
)
