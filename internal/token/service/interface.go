// Package service implements the token service collaborator: mint creation,
// extensible metadata, mint/burn, and storage funding. The core workflows
// call these interfaces and treat mint addresses as opaque handles.
package service

import (
	"context"

	"github.com/allisson/carbonledger/internal/token/domain"
)

// MintRepository defines mint persistence operations.
type MintRepository interface {
	Create(ctx context.Context, mint *domain.Mint) error
	GetByAddress(ctx context.Context, address string) (*domain.Mint, error)
	GetByAddressForUpdate(ctx context.Context, address string) (*domain.Mint, error)
	AddSupply(ctx context.Context, address string, amount uint64) error
	SubSupply(ctx context.Context, address string, amount uint64) error
	RevokeMintAuthority(ctx context.Context, address string) error
}

// MetadataRepository defines token metadata persistence operations.
type MetadataRepository interface {
	Create(ctx context.Context, md *domain.Metadata) error
	GetByMint(ctx context.Context, mintAddress string) (*domain.Metadata, error)
	GetByMintForUpdate(ctx context.Context, mintAddress string) (*domain.Metadata, error)
	UpsertField(ctx context.Context, mintAddress, key, value string) error
}

// HoldingRepository defines holding persistence operations.
type HoldingRepository interface {
	GetByMintAndOwner(ctx context.Context, mintAddress, owner string) (*domain.Holding, error)
	Credit(ctx context.Context, mintAddress, owner string, amount uint64) error
	Debit(ctx context.Context, mintAddress, owner string, amount uint64) error
}

// FundingRepository defines storage funding account persistence operations.
type FundingRepository interface {
	GetBalance(ctx context.Context, address string) (uint64, error)
	Credit(ctx context.Context, address string, amount uint64) error
	Debit(ctx context.Context, address string, amount uint64) error
}

// CreateMintInput describes a mint to create. Address is derived by the
// caller; MintAuthority is the authority record address that signs all
// future privileged operations on the mint.
type CreateMintInput struct {
	Address       string
	Decimals      uint8
	MintAuthority string
	Extensions    domain.Extensions
}

// TokenService is the token-service collaborator contract. Written metadata
// strings round-trip exactly through a subsequent read.
type TokenService interface {
	CreateMint(ctx context.Context, input CreateMintInput) (*domain.Mint, error)
	InitializeMetadata(ctx context.Context, mintAddress, authority, name, symbol, uri string) error
	UpdateMetadataField(ctx context.Context, mintAddress, authority, key, value string) error
	ReadMetadataFields(ctx context.Context, mintAddress string) (map[string]string, error)
	// ReadMetadataForUpdate reads the metadata entry while locking its row
	// for the enclosing transaction. Workflows that read, decide, and write
	// back counters use this so two transactions cannot both admit against
	// the same stale snapshot.
	ReadMetadataForUpdate(ctx context.Context, mintAddress string) (*domain.Metadata, error)
	Mint(ctx context.Context, mintAddress, authority, destination string, amount uint64) error
	Burn(ctx context.Context, mintAddress, owner string, amount uint64) error
	RevokeMintAuthority(ctx context.Context, mintAddress, authority string) error
	GetMint(ctx context.Context, mintAddress string) (*domain.Mint, error)
	Balance(ctx context.Context, mintAddress, owner string) (uint64, error)
}

// StorageFunding is the storage funding collaborator contract. It must be
// invoked before any metadata field is attached, since growing a metadata map
// can increase required storage mid-workflow.
type StorageFunding interface {
	EnsureMinimumBalance(ctx context.Context, account, payer string, requiredBytes int) error
}
