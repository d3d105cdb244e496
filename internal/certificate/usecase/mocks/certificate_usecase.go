// Package mocks provides mock implementations for testing consumers of the
// certificate use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	certificateDomain "github.com/allisson/carbonledger/internal/certificate/domain"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// MockCertificateUseCase is a mock implementation of the certificate UseCase for testing.
type MockCertificateUseCase struct {
	mock.Mock
}

// IssueMinterCert mocks the IssueMinterCert method.
func (m *MockCertificateUseCase) IssueMinterCert(
	ctx context.Context,
	input certificateUseCase.IssueMinterCertInput,
) (*certificateDomain.Certificate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificateDomain.Certificate), args.Error(1)
}

// IssueConsumerCert mocks the IssueConsumerCert method.
func (m *MockCertificateUseCase) IssueConsumerCert(
	ctx context.Context,
	input certificateUseCase.IssueConsumerCertInput,
) (*certificateDomain.Certificate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificateDomain.Certificate), args.Error(1)
}

// InitCreditToken mocks the InitCreditToken method.
func (m *MockCertificateUseCase) InitCreditToken(
	ctx context.Context,
	input certificateUseCase.InitCreditTokenInput,
) (*certificateDomain.CreditToken, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*certificateDomain.CreditToken), args.Error(1)
}
