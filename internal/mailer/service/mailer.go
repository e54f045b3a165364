// Package service implements outgoing mail over SMTP.
package service

import (
	"context"
	"log/slog"

	"github.com/wneessen/go-mail"

	apperrors "github.com/lovelifenow/admin-api/internal/errors"
)

// Message is one outgoing email. Text and HTML are alternative bodies of the
// same content.
type Message struct {
	To           string
	Subject      string
	Text         string
	HTML         string
	ReplyToName  string
	ReplyToEmail string
}

// Mailer sends email. Implementations must be safe for concurrent use.
type Mailer interface {
	// Send delivers the message and returns its Message-ID.
	Send(ctx context.Context, msg *Message) (string, error)
}

// SMTPConfig holds the SMTP connection and sender settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// smtpMailer implements Mailer with go-mail. Port 465 uses implicit TLS; any
// other port negotiates STARTTLS.
type smtpMailer struct {
	cfg    SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer creates a Mailer for the given SMTP settings.
func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) Mailer {
	return &smtpMailer{cfg: cfg, logger: logger}
}

// Send delivers the message over SMTP and returns its Message-ID.
func (s *smtpMailer) Send(ctx context.Context, msg *Message) (string, error) {
	if s.cfg.Host == "" || s.cfg.FromEmail == "" {
		return "", apperrors.ErrMisconfigured
	}

	m := mail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return "", apperrors.Wrap(err, "invalid from address")
	}
	if err := m.To(msg.To); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "invalid recipient address")
	}
	if msg.ReplyToEmail != "" {
		if err := m.ReplyToFormat(msg.ReplyToName, msg.ReplyToEmail); err != nil {
			return "", apperrors.Wrap(err, "invalid reply-to address")
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	m.SetMessageID()

	client, err := s.newClient()
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("mail delivery failed",
			slog.String("host", s.cfg.Host),
			slog.String("error", err.Error()))
		return "", apperrors.NewUpstream("send mail", "SMTP delivery failed")
	}

	messageID := m.GetMessageID()
	s.logger.Info("mail sent", slog.String("message_id", messageID))
	return messageID, nil
}

// newClient builds a go-mail client for the configured server.
func (s *smtpMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}

	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	return mail.NewClient(s.cfg.Host, opts...)
}
