package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelifenow/admin-api/internal/config"
	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
	sessionUseCase "github.com/lovelifenow/admin-api/internal/session/usecase"
)

const testSecret = "handler-test-secret" //nolint:gosec // test fixture, not a real credential

func newTestRouter(adminPassword, secret string) (*gin.Engine, sessionService.TokenCodec) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AdminPassword: adminPassword,
		SessionSecret: secret,
		SessionTTL:    24 * time.Hour,
	}
	codec := sessionService.NewTokenCodec(secret, cfg.SessionTTL)
	useCase := sessionUseCase.NewSessionUseCase(cfg, codec)
	handler := NewSessionHandler(useCase, cfg.SessionTTL, false, testLogger())

	router := gin.New()
	router.POST("/api/auth/login", handler.LoginHandler)
	router.POST("/api/auth/logout", handler.LogoutHandler)
	router.GET("/api/auth/check", handler.CheckHandler)
	router.GET("/api/protected", SessionMiddleware(codec, testLogger()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, codec
}

func performLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionDomain.CookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", sessionDomain.CookieName)
	return nil
}

func TestLoginHandler(t *testing.T) {
	t.Run("Success_SetsSessionCookie", func(t *testing.T) {
		router, codec := newTestRouter("password", testSecret)

		w := performLogin(router, `{"password":"password"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])

		cookie := sessionCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)
		assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
		assert.True(t, codec.Verify(cookie.Value, time.Now()))
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		router, _ := newTestRouter("password", testSecret)

		w := performLogin(router, `{"password":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_MissingPasswordField", func(t *testing.T) {
		router, _ := newTestRouter("password", testSecret)

		// Request validation rejects the body before the password check runs.
		w := performLogin(router, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "cannot be blank")
	})

	t.Run("Error_InvalidPassword", func(t *testing.T) {
		router, _ := newTestRouter("password", testSecret)

		w := performLogin(router, `{"password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router, _ := newTestRouter("password", testSecret)

		w := performLogin(router, `{"password":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_UnsetAdminPassword", func(t *testing.T) {
		router, _ := newTestRouter("", testSecret)

		w := performLogin(router, `{"password":"anything"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Server configuration error", resp["error"])
	})
}

func TestLogoutHandler(t *testing.T) {
	router, _ := newTestRouter("password", testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestCheckHandler(t *testing.T) {
	router, codec := newTestRouter("password", testSecret)

	check := func(cookie *http.Cookie) map[string]any {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("NoCookie", func(t *testing.T) {
		assert.Equal(t, false, check(nil)["authenticated"])
	})

	t.Run("ValidCookie", func(t *testing.T) {
		token := codec.Issue(time.Now())
		cookie := &http.Cookie{Name: sessionDomain.CookieName, Value: token}
		assert.Equal(t, true, check(cookie)["authenticated"])
	})

	t.Run("GarbageCookie", func(t *testing.T) {
		cookie := &http.Cookie{Name: sessionDomain.CookieName, Value: "garbage"}
		assert.Equal(t, false, check(cookie)["authenticated"])
	})
}

// TestLoginSessionEndToEnd walks the full scenario: login with the correct
// password, use the returned cookie on a protected route, then show that a
// cookie whose timestamp is rewritten to 25 hours ago is rejected.
func TestLoginSessionEndToEnd(t *testing.T) {
	router, codec := newTestRouter("password", testSecret)

	// Login and capture the cookie.
	loginResp := performLogin(router, `{"password":"password"}`)
	require.Equal(t, http.StatusOK, loginResp.Code)
	cookie := sessionCookie(t, loginResp)

	// Fresh cookie reaches the protected route.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// A token legitimately signed 25 hours ago no longer passes.
	stale := codec.Issue(time.Now().Add(-25 * time.Hour))
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: sessionDomain.CookieName, Value: stale})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Rewriting the timestamp on a valid cookie breaks the signature too.
	parts := strings.SplitN(cookie.Value, ":", 2)
	require.Len(t, parts, 2)
	rewritten := "1000000000000:" + parts[1]
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(&http.Cookie{Name: sessionDomain.CookieName, Value: rewritten})
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
