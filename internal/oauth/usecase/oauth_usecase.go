package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lovelifenow/admin-api/internal/config"
	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
	oauthService "github.com/lovelifenow/admin-api/internal/oauth/service"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
)

// stateBytes gives the CSRF state 256 bits of entropy.
const stateBytes = 32

// oauthUseCase implements OAuthUseCase.
//
// Security Notes:
//   - The state cookie value is "{state}:{signature}" where the signature is
//     the same HMAC primitive used for session tokens. The callback is only
//     accepted when the query state matches the cookie state AND the cookie
//     signature verifies, both in constant time.
//   - refreshMu serializes load, refresh, and store so two concurrent
//     refreshes cannot interleave and clobber a rotated refresh token.
type oauthUseCase struct {
	cfg       *config.Config
	provider  oauthService.Provider
	repo      TokenRepository
	codec     sessionService.TokenCodec
	logger    *slog.Logger
	refreshMu sync.Mutex
}

// NewOAuthUseCase creates an OAuthUseCase with required dependencies. The
// codec must be keyed with the same secret as the session codec so state
// signatures survive process restarts.
func NewOAuthUseCase(
	cfg *config.Config,
	provider oauthService.Provider,
	repo TokenRepository,
	codec sessionService.TokenCodec,
	logger *slog.Logger,
) OAuthUseCase {
	return &oauthUseCase{
		cfg:      cfg,
		provider: provider,
		repo:     repo,
		codec:    codec,
		logger:   logger,
	}
}

// StartAuthorization generates a random state, signs it, and builds the
// provider redirect URL. Fails closed when the OAuth client is unconfigured.
func (u *oauthUseCase) StartAuthorization() (string, string, error) {
	if u.cfg.OAuthClientID == "" || u.cfg.OAuthClientSecret == "" ||
		u.cfg.OAuthRedirectURI == "" || u.cfg.SessionSecret == "" {
		u.logger.Error("oauth start rejected, client credentials not configured")
		return "", "", apperrors.ErrMisconfigured
	}

	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate oauth state")
	}
	state := hex.EncodeToString(buf)

	stateCookie := state + ":" + u.codec.Sign(state)
	redirectURL := u.provider.AuthCodeURL(state)

	u.logger.Info("oauth authorization started")
	return redirectURL, stateCookie, nil
}

// HandleCallback runs the ordered callback checks. The caller must clear the
// state cookie on every exit path so a state can never be replayed.
func (u *oauthUseCase) HandleCallback(
	ctx context.Context,
	queryState, code, queryErr, stateCookie string,
) (*oauthDomain.TokenRecord, error) {
	if queryErr != "" {
		u.logger.Warn("oauth callback denied by provider", slog.String("provider_error", queryErr))
		return nil, oauthDomain.ErrProviderDenied
	}

	if code == "" {
		return nil, oauthDomain.ErrMissingCode
	}

	if u.cfg.SessionSecret == "" {
		return nil, apperrors.ErrMisconfigured
	}

	if queryState == "" || stateCookie == "" {
		return nil, oauthDomain.ErrMissingState
	}

	cookieState, cookieSignature, found := strings.Cut(stateCookie, ":")
	if !found || queryState != cookieState || !u.codec.VerifySignature(queryState, cookieSignature) {
		u.logger.Warn("oauth callback state mismatch")
		return nil, oauthDomain.ErrStateMismatch
	}

	record, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := u.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	u.logger.Info("oauth tokens exchanged and persisted")
	return record, nil
}

// ValidAccessToken returns the stored access token when it is fresh, or
// refreshes and persists a replacement record first. A failed refresh is
// propagated; the stale token is never returned.
func (u *oauthUseCase) ValidAccessToken(ctx context.Context) (string, error) {
	u.refreshMu.Lock()
	defer u.refreshMu.Unlock()

	record, err := u.repo.Get(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if record.FreshAt(now, u.cfg.OAuthRefreshBuffer) {
		return record.AccessToken, nil
	}

	attemptID := uuid.Must(uuid.NewV7())
	u.logger.Info("access token stale, refreshing",
		slog.String("attempt_id", attemptID.String()),
		slog.Int64("expires_at", record.ExpiresAt))

	fresh, err := u.provider.Refresh(ctx, record.RefreshToken)
	if err != nil {
		u.logger.Error("token refresh failed", slog.String("attempt_id", attemptID.String()))
		return "", err
	}

	if err := u.repo.Save(ctx, fresh); err != nil {
		return "", err
	}

	u.logger.Info("access token refreshed", slog.String("attempt_id", attemptID.String()))
	return fresh.AccessToken, nil
}
