// Package mocks provides mock implementations of the token service
// collaborators for testing workflows that drive them.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	tokenDomain "github.com/allisson/carbonledger/internal/token/domain"
	tokenService "github.com/allisson/carbonledger/internal/token/service"
)

// MockTokenService is a mock implementation of TokenService.
type MockTokenService struct {
	mock.Mock
}

// CreateMint mocks the CreateMint method of TokenService.
func (m *MockTokenService) CreateMint(
	ctx context.Context,
	input tokenService.CreateMintInput,
) (*tokenDomain.Mint, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Mint), args.Error(1)
}

// InitializeMetadata mocks the InitializeMetadata method of TokenService.
func (m *MockTokenService) InitializeMetadata(ctx context.Context, mintAddress, authority, name, symbol, uri string) error {
	args := m.Called(ctx, mintAddress, authority, name, symbol, uri)
	return args.Error(0)
}

// UpdateMetadataField mocks the UpdateMetadataField method of TokenService.
func (m *MockTokenService) UpdateMetadataField(ctx context.Context, mintAddress, authority, key, value string) error {
	args := m.Called(ctx, mintAddress, authority, key, value)
	return args.Error(0)
}

// ReadMetadataFields mocks the ReadMetadataFields method of TokenService.
func (m *MockTokenService) ReadMetadataFields(ctx context.Context, mintAddress string) (map[string]string, error) {
	args := m.Called(ctx, mintAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// ReadMetadataForUpdate mocks the ReadMetadataForUpdate method of TokenService.
func (m *MockTokenService) ReadMetadataForUpdate(ctx context.Context, mintAddress string) (*tokenDomain.Metadata, error) {
	args := m.Called(ctx, mintAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Metadata), args.Error(1)
}

// Mint mocks the Mint method of TokenService.
func (m *MockTokenService) Mint(ctx context.Context, mintAddress, authority, destination string, amount uint64) error {
	args := m.Called(ctx, mintAddress, authority, destination, amount)
	return args.Error(0)
}

// Burn mocks the Burn method of TokenService.
func (m *MockTokenService) Burn(ctx context.Context, mintAddress, owner string, amount uint64) error {
	args := m.Called(ctx, mintAddress, owner, amount)
	return args.Error(0)
}

// RevokeMintAuthority mocks the RevokeMintAuthority method of TokenService.
func (m *MockTokenService) RevokeMintAuthority(ctx context.Context, mintAddress, authority string) error {
	args := m.Called(ctx, mintAddress, authority)
	return args.Error(0)
}

// GetMint mocks the GetMint method of TokenService.
func (m *MockTokenService) GetMint(ctx context.Context, mintAddress string) (*tokenDomain.Mint, error) {
	args := m.Called(ctx, mintAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tokenDomain.Mint), args.Error(1)
}

// Balance mocks the Balance method of TokenService.
func (m *MockTokenService) Balance(ctx context.Context, mintAddress, owner string) (uint64, error) {
	args := m.Called(ctx, mintAddress, owner)
	return args.Get(0).(uint64), args.Error(1)
}

// MockStorageFunding is a mock implementation of StorageFunding.
type MockStorageFunding struct {
	mock.Mock
}

// EnsureMinimumBalance mocks the EnsureMinimumBalance method of StorageFunding.
func (m *MockStorageFunding) EnsureMinimumBalance(ctx context.Context, account, payer string, requiredBytes int) error {
	args := m.Called(ctx, account, payer, requiredBytes)
	return args.Error(0)
}
