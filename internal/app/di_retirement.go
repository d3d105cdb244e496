package app

import (
	"fmt"

	retirementHTTP "github.com/allisson/carbonledger/internal/retirement/http"
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
)

// RetirementUseCase returns the retirement use case.
func (c *Container) RetirementUseCase() (retirementUseCase.UseCase, error) {
	var err error
	c.retirementUseCaseInit.Do(func() {
		c.retirementUseCase, err = c.initRetirementUseCase()
		if err != nil {
			c.initErrors["retirementUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["retirementUseCase"]; exists {
		return nil, storedErr
	}
	return c.retirementUseCase, nil
}

// RetirementHandler returns the retirement HTTP handler.
func (c *Container) RetirementHandler() (*retirementHTTP.RetirementHandler, error) {
	var err error
	c.retirementHandlerInit.Do(func() {
		c.retirementHandler, err = c.initRetirementHandler()
		if err != nil {
			c.initErrors["retirementHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["retirementHandler"]; exists {
		return nil, storedErr
	}
	return c.retirementHandler, nil
}

// initRetirementUseCase creates the retirement use case with all its dependencies.
func (c *Container) initRetirementUseCase() (retirementUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for retirement use case: %w", err)
	}

	authorityRepo, err := c.AuthorityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get authority repository for retirement use case: %w", err)
	}

	tokenSvc, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for retirement use case: %w", err)
	}

	funding, err := c.StorageFunding()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage funding for retirement use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for retirement use case: %w", err)
	}

	baseUseCase := retirementUseCase.NewRetirementUseCase(
		txManager,
		authorityRepo,
		tokenSvc,
		funding,
		audit,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for retirement use case: %w", err)
		}
		return retirementUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initRetirementHandler creates the retirement HTTP handler with all its dependencies.
func (c *Container) initRetirementHandler() (*retirementHTTP.RetirementHandler, error) {
	useCase, err := c.RetirementUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get retirement use case for retirement handler: %w", err)
	}

	return retirementHTTP.NewRetirementHandler(useCase, c.Logger()), nil
}
