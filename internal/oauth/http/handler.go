// Package http provides HTTP handlers for the OAuth authorization flow.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	"github.com/lovelifenow/admin-api/internal/httputil"
	oauthDomain "github.com/lovelifenow/admin-api/internal/oauth/domain"
	oauthUseCase "github.com/lovelifenow/admin-api/internal/oauth/usecase"
)

// OAuthHandler handles the browser-facing authorization endpoints. The
// callback renders static HTML because it is reached by full-page navigation
// from the CRM, not by a dashboard script.
type OAuthHandler struct {
	oauthUseCase  oauthUseCase.OAuthUseCase
	stateTTL      time.Duration
	secureCookies bool
	logger        *slog.Logger
}

// NewOAuthHandler creates a new OAuth handler with required dependencies.
func NewOAuthHandler(
	useCase oauthUseCase.OAuthUseCase,
	stateTTL time.Duration,
	secureCookies bool,
	logger *slog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		oauthUseCase:  useCase,
		stateTTL:      stateTTL,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// StartHandler begins an authorization attempt.
// GET /api/oauth/start - Sets the state cookie and redirects to the provider.
func (h *OAuthHandler) StartHandler(c *gin.Context) {
	redirectURL, stateCookie, err := h.oauthUseCase.StartAuthorization()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	setStateCookie(c, stateCookie, h.stateTTL, h.secureCookies)
	c.Redirect(http.StatusFound, redirectURL)
}

// CallbackHandler completes an authorization attempt.
// GET /api/oauth/callback?code&state&error - Renders an HTML result page.
//
// The state cookie is cleared on every exit path, success or failure, so a
// given state cannot be replayed.
func (h *OAuthHandler) CallbackHandler(c *gin.Context) {
	stateCookie, cookieErr := c.Cookie(oauthDomain.StateCookieName)
	if cookieErr != nil {
		stateCookie = ""
	}

	clearStateCookie(c, h.secureCookies)

	_, err := h.oauthUseCase.HandleCallback(
		c.Request.Context(),
		c.Query("state"),
		c.Query("code"),
		c.Query("error"),
		stateCookie,
	)
	if err != nil {
		status, message := callbackErrorPage(err)
		httputil.HTMLPage(c, status, "Authorization Failed", message)
		return
	}

	httputil.HTMLSuccessPage(c, "Authorization Complete",
		"Bloomerang access has been connected. You can close this window.")
}

// callbackErrorPage maps a callback error to an HTML status and a message
// safe to show in the browser.
func callbackErrorPage(err error) (int, string) {
	switch {
	case apperrors.Is(err, oauthDomain.ErrProviderDenied):
		return http.StatusBadRequest, "The authorization request was denied by Bloomerang."
	case apperrors.Is(err, oauthDomain.ErrMissingCode):
		return http.StatusBadRequest, "The callback did not include an authorization code."
	case apperrors.Is(err, oauthDomain.ErrMissingState):
		return http.StatusBadRequest, "The authorization attempt has expired. Please start again."
	case apperrors.Is(err, oauthDomain.ErrStateMismatch):
		return http.StatusBadRequest, "The authorization state could not be verified. Please start again."
	case apperrors.Is(err, apperrors.ErrMisconfigured):
		return http.StatusInternalServerError, "The server is not configured for Bloomerang authorization."
	default:
		return http.StatusInternalServerError, "The token exchange with Bloomerang failed. Please try again."
	}
}

// setStateCookie attaches the signed CSRF state for the pending attempt.
func setStateCookie(c *gin.Context, value string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthDomain.StateCookieName, value, int(ttl.Seconds()), "/", "", secure, true)
}

// clearStateCookie tells the browser to discard the state cookie.
func clearStateCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthDomain.StateCookieName, "", -1, "/", "", secure, true)
}
