package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
	"github.com/lovelifenow/admin-api/internal/httputil"
	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
)

// SessionMiddleware gates protected routes behind a valid session cookie.
//
// The middleware:
//  1. Extracts the auth_token cookie value
//  2. Verifies it with the token codec (signature + 24h age)
//  3. Short-circuits with 401 {"error":"Authentication required"} on any failure
//
// Denial happens before the handler does any other work, including input
// validation, so unauthenticated callers learn nothing about the endpoint.
func SessionMiddleware(codec sessionService.TokenCodec, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionDomain.CookieName)
		if err != nil || !codec.Verify(token, time.Now()) {
			logger.Debug("session check failed",
				slog.String("path", c.Request.URL.Path),
				slog.Bool("cookie_present", err == nil))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
