package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/lovelifenow/admin-api/internal/httputil"
	sessionDomain "github.com/lovelifenow/admin-api/internal/session/domain"
	sessionUseCase "github.com/lovelifenow/admin-api/internal/session/usecase"
)

// SessionHandler handles HTTP requests for login, logout, and session checks.
type SessionHandler struct {
	sessionUseCase sessionUseCase.SessionUseCase
	sessionTTL     time.Duration
	secureCookies  bool
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	useCase sessionUseCase.SessionUseCase,
	sessionTTL time.Duration,
	secureCookies bool,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: useCase,
		sessionTTL:     sessionTTL,
		secureCookies:  secureCookies,
		logger:         logger,
	}
}

// LoginRequest contains the parameters for opening a dashboard session.
type LoginRequest struct {
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginHandler authenticates the admin password and sets the session cookie.
// POST /api/auth/login - No authentication required (this is the login endpoint).
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.sessionUseCase.Login(req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	SetSessionCookie(c, token, h.sessionTTL, h.secureCookies)

	h.logger.Info("admin login successful")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
	})
}

// LogoutHandler clears the session cookie. The token itself stays valid until
// it expires; logout only tells the client to discard it.
// POST /api/auth/logout
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	ClearSessionCookie(c, h.secureCookies)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out",
	})
}

// CheckHandler reports whether the caller holds a valid session.
// GET /api/auth/check - Never fails; the answer is the payload.
func (h *SessionHandler) CheckHandler(c *gin.Context) {
	token, err := c.Cookie(sessionDomain.CookieName)
	authenticated := err == nil && h.sessionUseCase.Check(token)

	c.JSON(http.StatusOK, gin.H{
		"authenticated": authenticated,
	})
}
