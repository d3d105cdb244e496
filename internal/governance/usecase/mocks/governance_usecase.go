// Package mocks provides mock implementations for testing consumers of the
// governance use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
)

// MockGovernanceUseCase is a mock implementation of the governance UseCase for testing.
type MockGovernanceUseCase struct {
	mock.Mock
}

// Initialize mocks the Initialize method.
func (m *MockGovernanceUseCase) Initialize(
	ctx context.Context,
	input governanceUseCase.InitializeInput,
) (*authorityDomain.Record, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

// Get mocks the Get method.
func (m *MockGovernanceUseCase) Get(ctx context.Context) (*authorityDomain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}

// RequireAuthority mocks the RequireAuthority method.
func (m *MockGovernanceUseCase) RequireAuthority(
	ctx context.Context,
	principal string,
) (*authorityDomain.Record, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authorityDomain.Record), args.Error(1)
}
