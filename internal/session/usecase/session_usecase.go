// Package usecase implements business logic for dashboard sessions.
package usecase

import (
	"crypto/subtle"
	"time"

	"github.com/lovelifenow/admin-api/internal/config"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
)

// SessionUseCase manages password login and session token validation.
type SessionUseCase interface {
	// Login validates the submitted password and returns a session token.
	Login(submittedPassword string) (string, error)

	// Check reports whether token is a currently valid session token.
	Check(token string) bool
}

// sessionUseCase implements SessionUseCase against the configured admin password.
type sessionUseCase struct {
	config *config.Config
	codec  sessionService.TokenCodec
}

// NewSessionUseCase creates a SessionUseCase with the provided dependencies.
func NewSessionUseCase(cfg *config.Config, codec sessionService.TokenCodec) SessionUseCase {
	return &sessionUseCase{config: cfg, codec: codec}
}

// Login authenticates the admin password and issues a session token.
//
// Security notes:
//   - The comparison is length-checked and constant time; a submitted
//     password of the wrong length is an automatic mismatch and never
//     reaches a byte-by-byte comparison.
//   - An unset admin password or session secret fails closed with
//     ErrMisconfigured rather than accepting anything.
func (u *sessionUseCase) Login(submittedPassword string) (string, error) {
	if submittedPassword == "" {
		return "", sessionDomain.ErrMissingPassword
	}

	if u.config.AdminPassword == "" || u.config.SessionSecret == "" {
		return "", apperrors.ErrMisconfigured
	}

	submitted := []byte(submittedPassword)
	configured := []byte(u.config.AdminPassword)
	if len(submitted) != len(configured) || subtle.ConstantTimeCompare(submitted, configured) != 1 {
		return "", sessionDomain.ErrInvalidPassword
	}

	return u.codec.Issue(time.Now()), nil
}

// Check verifies a session token against the current time.
func (u *sessionUseCase) Check(token string) bool {
	return u.codec.Verify(token, time.Now())
}
