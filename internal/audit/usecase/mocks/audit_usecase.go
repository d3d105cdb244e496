// Package mocks provides mock implementations for testing consumers of the
// audit use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/carbonledger/internal/audit/domain"
	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
)

// MockAuditUseCase is a mock implementation of the audit UseCase for testing.
type MockAuditUseCase struct {
	mock.Mock
}

// Record mocks the Record method.
func (m *MockAuditUseCase) Record(
	ctx context.Context,
	action, actor, resource string,
	details map[string]string,
) error {
	args := m.Called(ctx, action, actor, resource, details)
	return args.Error(0)
}

// List mocks the List method.
func (m *MockAuditUseCase) List(
	ctx context.Context,
	fromSequence uint64,
	limit int,
) ([]*auditDomain.Entry, error) {
	args := m.Called(ctx, fromSequence, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.Entry), args.Error(1)
}

// VerifyChain mocks the VerifyChain method.
func (m *MockAuditUseCase) VerifyChain(ctx context.Context) (*auditUseCase.VerifyResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditUseCase.VerifyResult), args.Error(1)
}
