package app

import (
	"fmt"

	ledgerHTTP "github.com/allisson/carbonledger/internal/ledger/http"
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// LedgerUseCase returns the ledger use case.
func (c *Container) LedgerUseCase() (ledgerUseCase.UseCase, error) {
	var err error
	c.ledgerUseCaseInit.Do(func() {
		c.ledgerUseCase, err = c.initLedgerUseCase()
		if err != nil {
			c.initErrors["ledgerUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ledgerUseCase"]; exists {
		return nil, storedErr
	}
	return c.ledgerUseCase, nil
}

// LedgerHandler returns the ledger HTTP handler.
func (c *Container) LedgerHandler() (*ledgerHTTP.LedgerHandler, error) {
	var err error
	c.ledgerHandlerInit.Do(func() {
		c.ledgerHandler, err = c.initLedgerHandler()
		if err != nil {
			c.initErrors["ledgerHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["ledgerHandler"]; exists {
		return nil, storedErr
	}
	return c.ledgerHandler, nil
}

// initLedgerUseCase creates the ledger use case with all its dependencies.
func (c *Container) initLedgerUseCase() (ledgerUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for ledger use case: %w", err)
	}

	authorityRepo, err := c.AuthorityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get authority repository for ledger use case: %w", err)
	}

	tokenSvc, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for ledger use case: %w", err)
	}

	funding, err := c.StorageFunding()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage funding for ledger use case: %w", err)
	}

	governance, err := c.GovernanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get governance use case for ledger use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for ledger use case: %w", err)
	}

	baseUseCase := ledgerUseCase.NewLedgerUseCase(
		txManager,
		authorityRepo,
		tokenSvc,
		funding,
		governance,
		audit,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for ledger use case: %w", err)
		}
		return ledgerUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initLedgerHandler creates the ledger HTTP handler with all its dependencies.
func (c *Container) initLedgerHandler() (*ledgerHTTP.LedgerHandler, error) {
	useCase, err := c.LedgerUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger use case for ledger handler: %w", err)
	}

	return ledgerHTTP.NewLedgerHandler(useCase, c.Logger()), nil
}
