package app

import (
	"fmt"

	governanceHTTP "github.com/allisson/carbonledger/internal/governance/http"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
)

// GovernanceUseCase returns the governance use case.
func (c *Container) GovernanceUseCase() (governanceUseCase.UseCase, error) {
	var err error
	c.governanceUseCaseInit.Do(func() {
		c.governanceUseCase, err = c.initGovernanceUseCase()
		if err != nil {
			c.initErrors["governanceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["governanceUseCase"]; exists {
		return nil, storedErr
	}
	return c.governanceUseCase, nil
}

// GovernanceHandler returns the governance HTTP handler.
func (c *Container) GovernanceHandler() (*governanceHTTP.GovernanceHandler, error) {
	var err error
	c.governanceHandlerInit.Do(func() {
		c.governanceHandler, err = c.initGovernanceHandler()
		if err != nil {
			c.initErrors["governanceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["governanceHandler"]; exists {
		return nil, storedErr
	}
	return c.governanceHandler, nil
}

// initGovernanceUseCase creates the governance use case with all its dependencies.
func (c *Container) initGovernanceUseCase() (governanceUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for governance use case: %w", err)
	}

	authorityRepo, err := c.AuthorityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get authority repository for governance use case: %w", err)
	}

	baseUseCase := governanceUseCase.NewGovernanceUseCase(txManager, authorityRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for governance use case: %w", err)
		}
		return governanceUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initGovernanceHandler creates the governance HTTP handler with all its dependencies.
func (c *Container) initGovernanceHandler() (*governanceHTTP.GovernanceHandler, error) {
	useCase, err := c.GovernanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get governance use case for governance handler: %w", err)
	}

	return governanceHTTP.NewGovernanceHandler(useCase, c.Logger()), nil
}
