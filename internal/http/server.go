package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/lovelifenow/admin-api/internal/config"
	mailerHTTP "github.com/lovelifenow/admin-api/internal/mailer/http"
	"github.com/lovelifenow/admin-api/internal/metrics"
	oauthHTTP "github.com/lovelifenow/admin-api/internal/oauth/http"
	sessionHTTP "github.com/lovelifenow/admin-api/internal/session/http"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
	submissionsHTTP "github.com/lovelifenow/admin-api/internal/submissions/http"
)

// Handlers bundles the HTTP handlers the server routes to.
type Handlers struct {
	Session     *sessionHTTP.SessionHandler
	OAuth       *oauthHTTP.OAuthHandler
	Submissions *submissionsHTTP.SubmissionHandler
	Mail        *mailerHTTP.MailHandler
}

// Server represents the admin API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the HTTP server and registers all routes.
// The session token codec gates the dashboard endpoints; OAuth, login, the
// health check, and the origin-checked form-notify endpoint stay public.
func NewServer(
	cfg *config.Config,
	handlers Handlers,
	tokenCodec sessionService.TokenCodec,
	metricsProvider *metrics.Provider,
	logger *slog.Logger,
) *Server {
	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	registerRoutes(router, cfg, handlers, tokenCodec, logger)

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// registerRoutes wires every endpoint to its handler.
func registerRoutes(
	router *gin.Engine,
	cfg *config.Config,
	handlers Handlers,
	tokenCodec sessionService.TokenCodec,
	logger *slog.Logger,
) {
	router.GET("/healthz", HealthHandler())

	api := router.Group("/api")

	// Login is public but rate limited per IP to slow down password guessing.
	login := api.Group("/auth")
	if cfg.RateLimitLoginEnabled {
		login.Use(sessionHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			logger,
		))
	}
	login.POST("/login", handlers.Session.LoginHandler)

	api.POST("/auth/logout", handlers.Session.LogoutHandler)
	api.GET("/auth/check", handlers.Session.CheckHandler)

	// OAuth endpoints are reached by full-page browser navigation.
	api.GET("/oauth/start", handlers.OAuth.StartHandler)
	api.GET("/oauth/callback", handlers.OAuth.CallbackHandler)

	// The public site calls form-notify directly; the handler checks the
	// request origin instead of a session.
	api.POST("/form-notify", handlers.Mail.FormNotifyHandler)

	// Everything else requires a valid session cookie.
	authed := api.Group("")
	authed.Use(sessionHTTP.SessionMiddleware(tokenCodec, logger))

	authed.GET("/submissions", handlers.Submissions.ListHandler)
	authed.GET("/submissions/:type/:id", handlers.Submissions.GetHandler)
	authed.PATCH("/submissions/:type/:id/status", handlers.Submissions.UpdateStatusHandler)
	authed.POST("/groups/assign", handlers.Submissions.AssignGroupHandler)

	authed.POST("/email/reply", handlers.Mail.ReplyHandler)
	authed.POST("/notify-submission", handlers.Mail.NotifySubmissionHandler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
