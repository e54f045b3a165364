// Package domain defines the OAuth token record and authorization flow errors.
package domain

import (
	"time"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

const (
	// StateCookieName is the CSRF state cookie set before redirecting the
	// browser to the CRM's authorization page.
	StateCookieName = "oauth_state"

	// BlobKey is the fixed blob key the single token record is stored under.
	BlobKey = "bloomerang/tokens"
)

// Authorization flow errors. Each wraps a standard domain error so handlers
// can map it to a status code with errors.Is.
var (
	// ErrProviderDenied indicates the provider sent back an error parameter,
	// usually because the user declined the authorization prompt.
	ErrProviderDenied = apperrors.Wrap(apperrors.ErrInvalidInput, "authorization denied by provider")

	// ErrMissingCode indicates the callback arrived without an authorization code.
	ErrMissingCode = apperrors.Wrap(apperrors.ErrInvalidInput, "missing authorization code")

	// ErrMissingState indicates the state parameter or state cookie is absent,
	// which happens when the cookie expired or the callback was replayed.
	ErrMissingState = apperrors.Wrap(apperrors.ErrInvalidInput, "missing oauth state")

	// ErrStateMismatch indicates the callback state does not match the signed
	// state cookie. Treated as a CSRF attempt and rejected.
	ErrStateMismatch = apperrors.Wrap(apperrors.ErrInvalidInput, "oauth state mismatch")

	// ErrExchangeFailed indicates the authorization-code exchange with the
	// provider's token endpoint failed.
	ErrExchangeFailed = apperrors.Wrap(apperrors.ErrUpstream, "token exchange failed")

	// ErrNotAuthorized indicates no token record has ever been persisted.
	// The admin must complete the authorization flow first.
	ErrNotAuthorized = apperrors.Wrap(apperrors.ErrUnauthorized, "no tokens found, authorize first")

	// ErrRefreshFailed indicates the refresh-token grant failed. Callers must
	// not fall back to the stale access token.
	ErrRefreshFailed = apperrors.Wrap(apperrors.ErrUpstream, "token refresh failed")
)

// TokenRecord is the persisted OAuth credential for the CRM integration.
// There is exactly one record per deployment; every write replaces the whole
// record because the provider may rotate the refresh token on each refresh.
type TokenRecord struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	// ExpiresAt is the access token expiry as unix milliseconds.
	ExpiresAt int64 `json:"expiresAt"`
	// UpdatedAt is the RFC 3339 time of the last write, for operator debugging.
	UpdatedAt string `json:"updatedAt"`
}

// NewTokenRecord builds a record from a token endpoint response.
func NewTokenRecord(accessToken, refreshToken string, expiresAt time.Time, now time.Time) *TokenRecord {
	return &TokenRecord{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt.UnixMilli(),
		UpdatedAt:    now.UTC().Format(time.RFC3339),
	}
}

// FreshAt reports whether the access token is still usable at now plus the
// given buffer. The buffer avoids handing out a token that expires mid-request.
func (r *TokenRecord) FreshAt(now time.Time, buffer time.Duration) bool {
	return r.ExpiresAt > now.Add(buffer).UnixMilli()
}
