package app

import (
	"fmt"
	"sync"

	oauthHTTP "github.com/lovelifenow/admin-api/internal/oauth/http"
	oauthRepository "github.com/lovelifenow/admin-api/internal/oauth/repository"
	oauthService "github.com/lovelifenow/admin-api/internal/oauth/service"
	oauthUseCase "github.com/lovelifenow/admin-api/internal/oauth/usecase"
)

// oauthComponents holds the lazily initialized OAuth dependencies.
type oauthComponents struct {
	providerInit sync.Once
	provider     oauthService.Provider
	repoInit     sync.Once
	repo         oauthUseCase.TokenRepository
	useCaseInit  sync.Once
	useCase      oauthUseCase.OAuthUseCase
	handlerInit  sync.Once
	handler      *oauthHTTP.OAuthHandler
}

// OAuthProvider returns the x/oauth2-backed provider for the CRM.
func (c *Container) OAuthProvider() oauthService.Provider {
	c.oauthInit.providerInit.Do(func() {
		c.oauthInit.provider = oauthService.NewProvider(oauthService.ProviderConfig{
			ClientID:     c.config.OAuthClientID,
			ClientSecret: c.config.OAuthClientSecret,
			RedirectURI:  c.config.OAuthRedirectURI,
			AuthorizeURL: c.config.OAuthAuthorizeURL,
			TokenURL:     c.config.OAuthTokenURL,
			Scope:        c.config.OAuthScope,
		}, c.UpstreamClient(), c.Logger())
	})
	return c.oauthInit.provider
}

// OAuthTokenRepository returns the blob-backed token record repository.
func (c *Container) OAuthTokenRepository() (oauthUseCase.TokenRepository, error) {
	var err error
	c.oauthInit.repoInit.Do(func() {
		bucket, bucketErr := c.TokenBucket()
		if bucketErr != nil {
			err = fmt.Errorf("failed to get token bucket for oauth repository: %w", bucketErr)
			c.initErrors["oauthTokenRepo"] = err
			return
		}
		c.oauthInit.repo = oauthRepository.NewBlobTokenRepository(bucket)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["oauthTokenRepo"]; exists {
		return nil, storedErr
	}
	return c.oauthInit.repo, nil
}

// OAuthUseCase returns the OAuth authorization use case.
func (c *Container) OAuthUseCase() (oauthUseCase.OAuthUseCase, error) {
	var err error
	c.oauthInit.useCaseInit.Do(func() {
		repo, repoErr := c.OAuthTokenRepository()
		if repoErr != nil {
			err = repoErr
			c.initErrors["oauthUseCase"] = err
			return
		}
		c.oauthInit.useCase = oauthUseCase.NewOAuthUseCase(
			c.config,
			c.OAuthProvider(),
			repo,
			c.TokenCodec(),
			c.Logger(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["oauthUseCase"]; exists {
		return nil, storedErr
	}
	return c.oauthInit.useCase, nil
}

// OAuthHandler returns the HTTP handler for the authorization flow.
func (c *Container) OAuthHandler() (*oauthHTTP.OAuthHandler, error) {
	var err error
	c.oauthInit.handlerInit.Do(func() {
		useCase, useCaseErr := c.OAuthUseCase()
		if useCaseErr != nil {
			err = useCaseErr
			c.initErrors["oauthHandler"] = err
			return
		}
		c.oauthInit.handler = oauthHTTP.NewOAuthHandler(
			useCase,
			c.config.OAuthStateTTL,
			c.config.SecureCookies(),
			c.Logger(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["oauthHandler"]; exists {
		return nil, storedErr
	}
	return c.oauthInit.handler, nil
}
