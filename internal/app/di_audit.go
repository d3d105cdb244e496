package app

import (
	"context"
	"encoding/base64"
	"fmt"

	auditHTTP "github.com/allisson/carbonledger/internal/audit/http"
	auditRepo "github.com/allisson/carbonledger/internal/audit/repository"
	auditService "github.com/allisson/carbonledger/internal/audit/service"
	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
)

// AuditRepository returns the audit entry repository based on database driver.
func (c *Container) AuditRepository() (auditUseCase.EntryRepository, error) {
	var err error
	c.auditRepoInit.Do(func() {
		c.auditRepo, err = c.initAuditRepository()
		if err != nil {
			c.initErrors["auditRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditRepo"]; exists {
		return nil, storedErr
	}
	return c.auditRepo, nil
}

// AuditSigner returns the audit entry signer derived from the configured signing key.
func (c *Container) AuditSigner() (auditService.Signer, error) {
	var err error
	c.auditSignerInit.Do(func() {
		c.auditSigner, err = c.initAuditSigner()
		if err != nil {
			c.initErrors["auditSigner"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditSigner"]; exists {
		return nil, storedErr
	}
	return c.auditSigner, nil
}

// AuditUseCase returns the audit use case.
func (c *Container) AuditUseCase() (auditUseCase.UseCase, error) {
	var err error
	c.auditUseCaseInit.Do(func() {
		c.auditUseCase, err = c.initAuditUseCase()
		if err != nil {
			c.initErrors["auditUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditUseCase, nil
}

// AuditHandler returns the audit HTTP handler.
func (c *Container) AuditHandler() (*auditHTTP.AuditHandler, error) {
	var err error
	c.auditHandlerInit.Do(func() {
		c.auditHandler, err = c.initAuditHandler()
		if err != nil {
			c.initErrors["auditHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditHandler"]; exists {
		return nil, storedErr
	}
	return c.auditHandler, nil
}

// initAuditRepository creates the audit entry repository instance.
func (c *Container) initAuditRepository() (auditUseCase.EntryRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return auditRepo.NewMySQLAuditRepository(db), nil
	case "postgres":
		return auditRepo.NewPostgreSQLAuditRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuditSigner creates the audit signer from the configured signing key.
// When a KMS URI is configured, the key material is treated as a KMS-wrapped
// ciphertext and unwrapped through a gocloud.dev secrets keeper first.
func (c *Container) initAuditSigner() (auditService.Signer, error) {
	if c.config.AuditSigningKey == "" {
		return nil, fmt.Errorf("audit signing key is not configured")
	}

	secret, err := base64.StdEncoding.DecodeString(c.config.AuditSigningKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audit signing key: %w", err)
	}

	if c.config.AuditSigningKeyKMSURI != "" {
		secret, err = c.unwrapAuditSigningKey(secret)
		if err != nil {
			return nil, err
		}
	}

	if len(secret) < 32 {
		return nil, fmt.Errorf("audit signing key must be at least 32 bytes, got %d", len(secret))
	}

	return auditService.NewSigner(secret), nil
}

// unwrapAuditSigningKey decrypts the KMS-wrapped signing key ciphertext.
func (c *Container) unwrapAuditSigningKey(ciphertext []byte) ([]byte, error) {
	ctx := context.Background()

	keeper, err := auditService.NewKMSService().OpenKeeper(ctx, c.config.AuditSigningKeyKMSURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper for audit signing key: %w", err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap audit signing key: %w", err)
	}

	return plaintext, nil
}

// initAuditUseCase creates the audit use case with all its dependencies.
func (c *Container) initAuditUseCase() (auditUseCase.UseCase, error) {
	entryRepo, err := c.AuditRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit repository for audit use case: %w", err)
	}

	signer, err := c.AuditSigner()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit signer for audit use case: %w", err)
	}

	return auditUseCase.NewAuditUseCase(entryRepo, signer), nil
}

// initAuditHandler creates the audit HTTP handler with all its dependencies.
func (c *Container) initAuditHandler() (*auditHTTP.AuditHandler, error) {
	useCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for audit handler: %w", err)
	}

	return auditHTTP.NewAuditHandler(useCase, c.Logger()), nil
}
