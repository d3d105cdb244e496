package app

import (
	"fmt"

	certificateHTTP "github.com/allisson/carbonledger/internal/certificate/http"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// CertificateUseCase returns the certificate use case.
func (c *Container) CertificateUseCase() (certificateUseCase.UseCase, error) {
	var err error
	c.certificateUseCaseInit.Do(func() {
		c.certificateUseCase, err = c.initCertificateUseCase()
		if err != nil {
			c.initErrors["certificateUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificateUseCase"]; exists {
		return nil, storedErr
	}
	return c.certificateUseCase, nil
}

// CertificateHandler returns the certificate HTTP handler.
func (c *Container) CertificateHandler() (*certificateHTTP.CertificateHandler, error) {
	var err error
	c.certificateHandlerInit.Do(func() {
		c.certificateHandler, err = c.initCertificateHandler()
		if err != nil {
			c.initErrors["certificateHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["certificateHandler"]; exists {
		return nil, storedErr
	}
	return c.certificateHandler, nil
}

// initCertificateUseCase creates the certificate use case with all its dependencies.
func (c *Container) initCertificateUseCase() (certificateUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for certificate use case: %w", err)
	}

	authorityRepo, err := c.AuthorityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get authority repository for certificate use case: %w", err)
	}

	tokenSvc, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for certificate use case: %w", err)
	}

	funding, err := c.StorageFunding()
	if err != nil {
		return nil, fmt.Errorf("failed to get storage funding for certificate use case: %w", err)
	}

	governance, err := c.GovernanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get governance use case for certificate use case: %w", err)
	}

	audit, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for certificate use case: %w", err)
	}

	baseUseCase := certificateUseCase.NewCertificateUseCase(
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
			return nil, fmt.Errorf("failed to get business metrics for certificate use case: %w", err)
		}
		return certificateUseCase.NewUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCertificateHandler creates the certificate HTTP handler with all its dependencies.
func (c *Container) initCertificateHandler() (*certificateHTTP.CertificateHandler, error) {
	useCase, err := c.CertificateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get certificate use case for certificate handler: %w", err)
	}

	return certificateHTTP.NewCertificateHandler(useCase, c.Logger()), nil
}
