package app

import (
	"sync"

	mailerHTTP "github.com/lovelifenow/admin-api/internal/mailer/http"
	mailerService "github.com/lovelifenow/admin-api/internal/mailer/service"
	mailerUseCase "github.com/lovelifenow/admin-api/internal/mailer/usecase"
)

// mailComponents holds the lazily initialized mail dependencies.
type mailComponents struct {
	mailerInit  sync.Once
	mailer      mailerService.Mailer
	useCaseInit sync.Once
	useCase     mailerUseCase.MailUseCase
	handlerInit sync.Once
	handler     *mailerHTTP.MailHandler
}

// Mailer returns the SMTP mailer.
func (c *Container) Mailer() mailerService.Mailer {
	c.mailInit.mailerInit.Do(func() {
		c.mailInit.mailer = mailerService.NewSMTPMailer(mailerService.SMTPConfig{
			Host:      c.config.SMTPHost,
			Port:      c.config.SMTPPort,
			Username:  c.config.SMTPUser,
			Password:  c.config.SMTPPass,
			FromEmail: c.config.FromEmail,
			FromName:  c.config.FromName,
		}, c.Logger())
	})
	return c.mailInit.mailer
}

// MailUseCase returns the mail use case.
func (c *Container) MailUseCase() mailerUseCase.MailUseCase {
	c.mailInit.useCaseInit.Do(func() {
		c.mailInit.useCase = mailerUseCase.NewMailUseCase(
			c.config,
			c.Mailer(),
			c.CRMClient(),
			c.Logger(),
		)
	})
	return c.mailInit.useCase
}

// MailHandler returns the HTTP handler for reply and notification email.
func (c *Container) MailHandler() (*mailerHTTP.MailHandler, error) {
	c.mailInit.handlerInit.Do(func() {
		c.mailInit.handler = mailerHTTP.NewMailHandler(c.MailUseCase(), c.config, c.Logger())
	})
	return c.mailInit.handler, nil
}
