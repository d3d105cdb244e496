// Package mocks provides mock implementations for testing consumers of the
// ledger use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// MockLedgerUseCase is a mock implementation of the ledger UseCase for testing.
type MockLedgerUseCase struct {
	mock.Mock
}

// MintCredits mocks the MintCredits method.
func (m *MockLedgerUseCase) MintCredits(
	ctx context.Context,
	input ledgerUseCase.MintCreditsInput,
) (*ledgerDomain.Ledger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.Ledger), args.Error(1)
}

// SetQuota mocks the SetQuota method.
func (m *MockLedgerUseCase) SetQuota(
	ctx context.Context,
	input ledgerUseCase.SetQuotaInput,
) (*ledgerDomain.Ledger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.Ledger), args.Error(1)
}

// GetLedger mocks the GetLedger method.
func (m *MockLedgerUseCase) GetLedger(ctx context.Context, certMint string) (*ledgerDomain.Ledger, error) {
	args := m.Called(ctx, certMint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.Ledger), args.Error(1)
}
