// Package usecase implements the OAuth authorization flow and token store.
package usecase

import (
	"context"

	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
)

// TokenRepository persists the single OAuth token record.
type TokenRepository interface {
	// Get loads the record, returning ErrNotAuthorized when none exists.
	Get(ctx context.Context) (*oauthDomain.TokenRecord, error)
	// Save replaces the record.
	Save(ctx context.Context, record *oauthDomain.TokenRecord) error
}

// OAuthUseCase drives the three-legged authorization flow and hands out
// valid access tokens, refreshing transparently when needed.
type OAuthUseCase interface {
	// StartAuthorization begins an authorization attempt. It returns the
	// provider redirect URL and the signed state cookie value to set.
	StartAuthorization() (redirectURL, stateCookie string, err error)

	// HandleCallback validates the provider callback against the state
	// cookie, exchanges the code, and persists the resulting record.
	HandleCallback(ctx context.Context, queryState, code, queryErr, stateCookie string) (*oauthDomain.TokenRecord, error)

	// ValidAccessToken returns an access token guaranteed usable for at
	// least the refresh buffer, refreshing and persisting when necessary.
	ValidAccessToken(ctx context.Context) (string, error)
}
