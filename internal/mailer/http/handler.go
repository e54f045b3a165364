// Package http provides HTTP handlers for reply and notification email.
package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/lovelifenow/admin-api/internal/config"
	"github.com/lovelifenow/admin-api/internal/httputil"
	mailerUseCase "github.com/lovelifenow/admin-api/internal/mailer/usecase"
	appvalidation "github.com/lovelifenow/admin-api/internal/validation"
)

// MailHandler handles HTTP requests for sending reply and notification emails.
type MailHandler struct {
	mailUseCase mailerUseCase.MailUseCase
	cfg         *config.Config
	logger      *slog.Logger
}

// NewMailHandler creates a new mail handler with required dependencies.
func NewMailHandler(useCase mailerUseCase.MailUseCase, cfg *config.Config, logger *slog.Logger) *MailHandler {
	return &MailHandler{
		mailUseCase: useCase,
		cfg:         cfg,
		logger:      logger,
	}
}

// ReplyRequest contains the parameters for sending a reply email.
type ReplyRequest struct {
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmissionID int64  `json:"submissionId"`
}

// Validate checks if the reply request is valid.
func (r *ReplyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.To, validation.Required, appvalidation.Email),
		validation.Field(&r.Subject, validation.Required, appvalidation.NotBlank),
		validation.Field(&r.Message, validation.Required, appvalidation.NotBlank),
	)
}

// ReplyHandler sends a staff reply email to a submitter.
// POST /api/email/reply - Requires valid session.
func (h *MailHandler) ReplyHandler(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	messageID, err := h.mailUseCase.SendReply(c.Request.Context(), req.To, req.Subject, req.Message)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"messageId":    messageID,
		"submissionId": req.SubmissionID,
	})
}

// NotifySubmissionRequest contains the parameters for notifying staff about a
// stored submission.
type NotifySubmissionRequest struct {
	SubmissionID int64  `json:"submissionId"`
	FormType     string `json:"formType"`
}

// Validate checks if the notify submission request is valid.
func (r *NotifySubmissionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SubmissionID, validation.Required),
		validation.Field(&r.FormType, validation.Required),
	)
}

// NotifySubmissionHandler emails the notification address about a stored
// submission.
// POST /api/notify-submission - Requires valid session.
func (h *MailHandler) NotifySubmissionHandler(c *gin.Context) {
	var req NotifySubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	sentTo, replyTo, err := h.mailUseCase.NotifySubmission(c.Request.Context(), req.SubmissionID, req.FormType)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sentTo":  sentTo,
		"replyTo": replyTo,
	})
}

// FormNotifyHandler emails the notification address about a just-submitted
// public form. The endpoint is unauthenticated because the public site calls
// it, so the request origin is checked against the site URL instead.
// POST /api/form-notify - Origin restricted.
func (h *MailHandler) FormNotifyHandler(c *gin.Context) {
	if !h.allowedOrigin(c) {
		h.logger.Warn("form notify rejected",
			slog.String("origin", c.GetHeader("Origin")),
			slog.String("referer", c.GetHeader("Referer")))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var payload mailerUseCase.FormNotifyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.mailUseCase.NotifyForm(c.Request.Context(), &payload); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// allowedOrigin reports whether the request comes from the public site or a
// local development server. The Origin header is checked first, then Referer.
func (h *MailHandler) allowedOrigin(c *gin.Context) bool {
	source := c.GetHeader("Origin")
	if source == "" {
		source = c.GetHeader("Referer")
	}
	if source == "" {
		return false
	}

	if h.cfg.SiteURL != "" && strings.HasPrefix(source, h.cfg.SiteURL) {
		return true
	}
	return strings.HasPrefix(source, "http://localhost") || strings.HasPrefix(source, "https://localhost")
}
