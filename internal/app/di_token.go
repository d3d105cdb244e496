package app

import (
	"context"
	"fmt"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	authorityRepo "github.com/allisson/carbonledger/internal/authority/repository"
	tokenRepo "github.com/allisson/carbonledger/internal/token/repository"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
)

// authorityRepository aggregates every authority record operation. The use
// cases each consume a narrower slice of it.
type authorityRepository interface {
	Create(ctx context.Context, record *authorityDomain.Record) error
	GetByAddress(ctx context.Context, address string) (*authorityDomain.Record, error)
	GetByRoleAndResource(ctx context.Context, role authorityDomain.Role, resource string) (*authorityDomain.Record, error)
	GetByRoleAndOwner(ctx context.Context, role authorityDomain.Role, owner string) (*authorityDomain.Record, error)
}

// AuthorityRepository returns the authority record repository based on database driver.
func (c *Container) AuthorityRepository() (authorityRepository, error) {
	var err error
	c.authorityRepoInit.Do(func() {
		c.authorityRepo, err = c.initAuthorityRepository()
		if err != nil {
			c.initErrors["authorityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorityRepo"]; exists {
		return nil, storedErr
	}
	return c.authorityRepo, nil
}

// MintRepository returns the mint repository based on database driver.
func (c *Container) MintRepository() (tokenService.MintRepository, error) {
	var err error
	c.mintRepoInit.Do(func() {
		c.mintRepo, err = c.initMintRepository()
		if err != nil {
			c.initErrors["mintRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["mintRepo"]; exists {
		return nil, storedErr
	}
	return c.mintRepo, nil
}

// MetadataRepository returns the token metadata repository based on database driver.
func (c *Container) MetadataRepository() (tokenService.MetadataRepository, error) {
	var err error
	c.metadataRepoInit.Do(func() {
		c.metadataRepo, err = c.initMetadataRepository()
		if err != nil {
			c.initErrors["metadataRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metadataRepo"]; exists {
		return nil, storedErr
	}
	return c.metadataRepo, nil
}

// HoldingRepository returns the token holding repository based on database driver.
func (c *Container) HoldingRepository() (tokenService.HoldingRepository, error) {
	var err error
	c.holdingRepoInit.Do(func() {
		c.holdingRepo, err = c.initHoldingRepository()
		if err != nil {
			c.initErrors["holdingRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["holdingRepo"]; exists {
		return nil, storedErr
	}
	return c.holdingRepo, nil
}

// FundingRepository returns the funding account repository based on database driver.
func (c *Container) FundingRepository() (tokenService.FundingRepository, error) {
	var err error
	c.fundingRepoInit.Do(func() {
		c.fundingRepo, err = c.initFundingRepository()
		if err != nil {
			c.initErrors["fundingRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fundingRepo"]; exists {
		return nil, storedErr
	}
	return c.fundingRepo, nil
}

// TokenService returns the token bookkeeping service.
func (c *Container) TokenService() (tokenService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService()
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// StorageFunding returns the storage funding service.
func (c *Container) StorageFunding() (tokenService.StorageFunding, error) {
	var err error
	c.storageFundingInit.Do(func() {
		c.storageFunding, err = c.initStorageFunding()
		if err != nil {
			c.initErrors["storageFunding"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["storageFunding"]; exists {
		return nil, storedErr
	}
	return c.storageFunding, nil
}

// initAuthorityRepository creates the authority record repository instance.
func (c *Container) initAuthorityRepository() (authorityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for authority repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return authorityRepo.NewMySQLAuthorityRepository(db), nil
	case "postgres":
		return authorityRepo.NewPostgreSQLAuthorityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMintRepository creates the mint repository instance.
func (c *Container) initMintRepository() (tokenService.MintRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for mint repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tokenRepo.NewMySQLMintRepository(db), nil
	case "postgres":
		return tokenRepo.NewPostgreSQLMintRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initMetadataRepository creates the token metadata repository instance.
func (c *Container) initMetadataRepository() (tokenService.MetadataRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for metadata repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tokenRepo.NewMySQLMetadataRepository(db), nil
	case "postgres":
		return tokenRepo.NewPostgreSQLMetadataRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initHoldingRepository creates the token holding repository instance.
func (c *Container) initHoldingRepository() (tokenService.HoldingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for holding repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tokenRepo.NewMySQLHoldingRepository(db), nil
	case "postgres":
		return tokenRepo.NewPostgreSQLHoldingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFundingRepository creates the funding account repository instance.
func (c *Container) initFundingRepository() (tokenService.FundingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for funding repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return tokenRepo.NewMySQLFundingRepository(db), nil
	case "postgres":
		return tokenRepo.NewPostgreSQLFundingRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenService creates the token service with all its repositories.
func (c *Container) initTokenService() (tokenService.TokenService, error) {
	mintRepo, err := c.MintRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get mint repository for token service: %w", err)
	}

	metadataRepo, err := c.MetadataRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata repository for token service: %w", err)
	}

	holdingRepo, err := c.HoldingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get holding repository for token service: %w", err)
	}

	return tokenService.NewTokenService(mintRepo, metadataRepo, holdingRepo), nil
}

// initStorageFunding creates the storage funding service.
func (c *Container) initStorageFunding() (tokenService.StorageFunding, error) {
	fundingRepo, err := c.FundingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get funding repository for storage funding: %w", err)
	}

	return tokenService.NewStorageFundingService(fundingRepo, c.config.StorageByteCost), nil
}
