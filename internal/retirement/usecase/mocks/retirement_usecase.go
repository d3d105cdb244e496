// Package mocks provides mock implementations for testing consumers of the
// retirement use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	retirementDomain "github.com/allisson/carbonledger/internal/retirement/domain"
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
)

// MockRetirementUseCase is a mock implementation of the retirement UseCase for testing.
type MockRetirementUseCase struct {
	mock.Mock
}

// Retire mocks the Retire method.
func (m *MockRetirementUseCase) Retire(
	ctx context.Context,
	input retirementUseCase.RetireInput,
) (*retirementDomain.Receipt, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retirementDomain.Receipt), args.Error(1)
}
