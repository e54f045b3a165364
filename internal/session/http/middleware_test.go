package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProtectedRouter(codec sessionService.TokenCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/submissions", SessionMiddleware(codec, testLogger()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestSessionMiddleware(t *testing.T) {
	codec := sessionService.NewTokenCodec("middleware-test-secret", 24*time.Hour)
	router := newProtectedRouter(codec)

	request := func(cookieValue string, withCookie bool) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
		if withCookie {
			req.AddCookie(&http.Cookie{Name: sessionDomain.CookieName, Value: cookieValue})
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Success_ValidCookie", func(t *testing.T) {
		w := request(codec.Issue(time.Now()), true)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NoCookie", func(t *testing.T) {
		w := request("", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		for _, value := range []string{"", "garbage", "123456789", ":sig", "notanumber:deadbeef"} {
			w := request(value, true)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "value=%q", value)
		}
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		w := request(codec.Issue(time.Now().Add(-25*time.Hour)), true)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		other := sessionService.NewTokenCodec("another-secret", 24*time.Hour)
		w := request(other.Issue(time.Now()), true)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newLimitedRouter := func(rps float64, burst int) *gin.Engine {
		router := gin.New()
		router.POST("/api/auth/login", LoginRateLimitMiddleware(rps, burst, testLogger()), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		return router
	}

	attempt := func(router *gin.Engine, ip string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = ip + ":51234"
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Success_WithinBurst", func(t *testing.T) {
		router := newLimitedRouter(1, 3)
		for i := 0; i < 3; i++ {
			w := attempt(router, "192.0.2.1")
			assert.Equal(t, http.StatusOK, w.Code, "attempt %d", i)
		}
	})

	t.Run("Error_BurstExceeded", func(t *testing.T) {
		router := newLimitedRouter(0.001, 2)
		attempt(router, "192.0.2.2")
		attempt(router, "192.0.2.2")

		w := attempt(router, "192.0.2.2")
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Success_LimitersAreIndependentPerIP", func(t *testing.T) {
		router := newLimitedRouter(0.001, 1)
		attempt(router, "192.0.2.3")
		require.Equal(t, http.StatusTooManyRequests, attempt(router, "192.0.2.3").Code)

		// A different client still gets through.
		assert.Equal(t, http.StatusOK, attempt(router, "192.0.2.4").Code)
	})
}
