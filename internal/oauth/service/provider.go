// Package service implements the OAuth2 provider client for the CRM.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
)

// Provider performs the outbound OAuth2 calls against the CRM's authorization
// and token endpoints.
type Provider interface {
	// AuthCodeURL builds the provider authorization URL embedding the state.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for a token record.
	Exchange(ctx context.Context, code string) (*oauthDomain.TokenRecord, error)
	// Refresh trades a refresh token for a new token record. The returned
	// record carries the rotated refresh token when the provider sends one.
	Refresh(ctx context.Context, refreshToken string) (*oauthDomain.TokenRecord, error)
}

// ProviderConfig holds the settings for the OAuth2 client.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthorizeURL string
	TokenURL     string
	Scope        string
}

// oauthProvider implements Provider on top of golang.org/x/oauth2. The CRM
// expects client credentials as HTTP Basic auth on token requests, which is
// oauth2.AuthStyleInHeader.
type oauthProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewProvider creates a Provider with an injected HTTP client so outbound
// calls inherit the configured timeout.
func NewProvider(cfg ProviderConfig, httpClient *http.Client, logger *slog.Logger) Provider {
	return &oauthProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{cfg.Scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: httpClient,
		logger:     logger,
	}
}

// AuthCodeURL builds the authorization URL embedding the CSRF state.
func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token record.
func (p *oauthProvider) Exchange(ctx context.Context, code string) (*oauthDomain.TokenRecord, error) {
	token, err := p.config.Exchange(p.clientContext(ctx), code)
	if err != nil {
		p.logger.Error("token exchange failed", slog.String("error", sanitizeTokenError(err)))
		return nil, apperrors.Wrap(oauthDomain.ErrExchangeFailed, sanitizeTokenError(err))
	}

	return p.record(token), nil
}

// Refresh trades a refresh token for a new token record.
func (p *oauthProvider) Refresh(ctx context.Context, refreshToken string) (*oauthDomain.TokenRecord, error) {
	source := p.config.TokenSource(p.clientContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		p.logger.Error("token refresh failed", slog.String("error", sanitizeTokenError(err)))
		return nil, apperrors.Wrap(oauthDomain.ErrRefreshFailed, sanitizeTokenError(err))
	}

	return p.record(token), nil
}

// clientContext injects the configured HTTP client into the oauth2 library.
func (p *oauthProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// record converts an oauth2 token into the persisted record shape.
func (p *oauthProvider) record(token *oauth2.Token) *oauthDomain.TokenRecord {
	now := time.Now()

	expiry := token.Expiry
	if expiry.IsZero() {
		// Providers should always send expires_in; fall back to an hour so a
		// missing field degrades to an early refresh instead of a stale token.
		expiry = now.Add(time.Hour)
	}

	return oauthDomain.NewTokenRecord(token.AccessToken, token.RefreshToken, expiry, now)
}

// sanitizeTokenError reduces a token endpoint failure to the provider's error
// code and description. Raw response bodies and URLs never reach callers.
func sanitizeTokenError(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if apperrors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode != "" {
			if retrieveErr.ErrorDescription != "" {
				return retrieveErr.ErrorCode + ": " + retrieveErr.ErrorDescription
			}
			return retrieveErr.ErrorCode
		}
		return retrieveErr.Response.Status
	}
	return "provider request failed"
}
