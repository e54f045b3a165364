// Package http provides HTTP handlers and middleware for dashboard sessions.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
)

// SetSessionCookie attaches the session token as an httpOnly, SameSite=Lax
// cookie scoped to the whole site.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionDomain.CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie tells the client to discard the session cookie.
// There is no server-side revocation; expiry and discard are the only exits.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionDomain.CookieName, "", -1, "/", "", secure, true)
}
