package app

import (
	"fmt"
	"sync"

	"github.com/lovelifenow/admin-api/internal/crm"
	submissionsHTTP "github.com/lovelifenow/admin-api/internal/submissions/http"
	submissionsRepository "github.com/lovelifenow/admin-api/internal/submissions/repository"
	submissionsUseCase "github.com/lovelifenow/admin-api/internal/submissions/usecase"
)

// submissionComponents holds the lazily initialized submission dependencies.
type submissionComponents struct {
	crmClientInit  sync.Once
	crmClient      *crm.Client
	statusRepoInit sync.Once
	statusRepo     submissionsUseCase.StatusRepository
	useCaseInit    sync.Once
	useCase        submissionsUseCase.SubmissionUseCase
	handlerInit    sync.Once
	handler        *submissionsHTTP.SubmissionHandler
}

// CRMClient returns the Bloomerang API client.
func (c *Container) CRMClient() *crm.Client {
	c.submissionsInit.crmClientInit.Do(func() {
		c.submissionsInit.crmClient = crm.NewClient(
			c.config.CRMBaseURL,
			c.config.CRMAPIKey,
			c.UpstreamClient(),
			c.Logger(),
		)
	})
	return c.submissionsInit.crmClient
}

// StatusRepository returns the submission status repository based on database driver.
func (c *Container) StatusRepository() (submissionsUseCase.StatusRepository, error) {
	var err error
	c.submissionsInit.statusRepoInit.Do(func() {
		c.submissionsInit.statusRepo, err = c.initStatusRepository()
		if err != nil {
			c.initErrors["statusRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["statusRepo"]; exists {
		return nil, storedErr
	}
	return c.submissionsInit.statusRepo, nil
}

// SubmissionUseCase returns the submission use case.
func (c *Container) SubmissionUseCase() (submissionsUseCase.SubmissionUseCase, error) {
	var err error
	c.submissionsInit.useCaseInit.Do(func() {
		c.submissionsInit.useCase, err = c.initSubmissionUseCase()
		if err != nil {
			c.initErrors["submissionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["submissionUseCase"]; exists {
		return nil, storedErr
	}
	return c.submissionsInit.useCase, nil
}

// SubmissionHandler returns the HTTP handler for the submissions dashboard API.
func (c *Container) SubmissionHandler() (*submissionsHTTP.SubmissionHandler, error) {
	var err error
	c.submissionsInit.handlerInit.Do(func() {
		useCase, useCaseErr := c.SubmissionUseCase()
		if useCaseErr != nil {
			err = useCaseErr
			c.initErrors["submissionHandler"] = err
			return
		}
		c.submissionsInit.handler = submissionsHTTP.NewSubmissionHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["submissionHandler"]; exists {
		return nil, storedErr
	}
	return c.submissionsInit.handler, nil
}

// initStatusRepository creates the status repository based on the database driver.
func (c *Container) initStatusRepository() (submissionsUseCase.StatusRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for status repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return submissionsRepository.NewPostgreSQLStatusRepository(db), nil
	case "mysql":
		return submissionsRepository.NewMySQLStatusRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSubmissionUseCase creates the submission use case with all its dependencies.
func (c *Container) initSubmissionUseCase() (submissionsUseCase.SubmissionUseCase, error) {
	statusRepo, err := c.StatusRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get status repository for submission use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for submission use case: %w", err)
	}

	oauthUC, err := c.OAuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth use case for submission use case: %w", err)
	}

	baseUseCase := submissionsUseCase.NewSubmissionUseCase(
		c.CRMClient(),
		statusRepo,
		txManager,
		oauthUC,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for submission use case: %w", err)
		}
		return submissionsUseCase.NewSubmissionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
