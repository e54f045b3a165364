package app

import (
	"sync"

	sessionHTTP "github.com/lovelifenow/admin-api/internal/session/http"
	sessionService "github.com/lovelifenow/admin-api/internal/session/service"
	sessionUseCase "github.com/lovelifenow/admin-api/internal/session/usecase"
)

// sessionComponents holds the lazily initialized session dependencies.
type sessionComponents struct {
	codecInit   sync.Once
	codec       sessionService.TokenCodec
	useCaseInit sync.Once
	useCase     sessionUseCase.SessionUseCase
	handlerInit sync.Once
	handler     *sessionHTTP.SessionHandler
}

// TokenCodec returns the HMAC token codec shared by session auth and OAuth
// state signing.
func (c *Container) TokenCodec() sessionService.TokenCodec {
	c.sessionInit.codecInit.Do(func() {
		c.sessionInit.codec = sessionService.NewTokenCodec(c.config.SessionSecret, c.config.SessionTTL)
	})
	return c.sessionInit.codec
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() sessionUseCase.SessionUseCase {
	c.sessionInit.useCaseInit.Do(func() {
		c.sessionInit.useCase = sessionUseCase.NewSessionUseCase(c.config, c.TokenCodec())
	})
	return c.sessionInit.useCase
}

// SessionHandler returns the HTTP handler for login, logout, and session checks.
func (c *Container) SessionHandler() (*sessionHTTP.SessionHandler, error) {
	c.sessionInit.handlerInit.Do(func() {
		c.sessionInit.handler = sessionHTTP.NewSessionHandler(
			c.SessionUseCase(),
			c.config.SessionTTL,
			c.config.SecureCookies(),
			c.Logger(),
		)
	})
	return c.sessionInit.handler, nil
}
