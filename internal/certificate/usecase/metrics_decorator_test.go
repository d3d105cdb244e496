package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/carbonledger/internal/certificate/domain"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
	certificateUseCaseMocks "github.com/allisson/carbonledger/internal/certificate/usecase/mocks"
	governanceDomain "github.com/allisson/carbonledger/internal/governance/domain"
	"github.com/allisson/carbonledger/internal/metrics"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func TestMetricsDecorator_IssueMinterCert(t *testing.T) {
	ctx := context.Background()
	input := certificateUseCase.IssueMinterCertInput{
		Authority: "governance-root",
		Receiver:  "minter-principal",
		Name:      "Forest Offsets",
		Symbol:    "FRST",
		URI:       "https://example.com/forest.json",
	}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &certificateUseCaseMocks.MockCertificateUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedCert := &domain.Certificate{
			CertMint:   "cert-mint-address",
			CreditMint: "credit-mint-address",
			Receiver:   input.Receiver,
		}

		mockUseCase.On("IssueMinterCert", ctx, input).Return(expectedCert, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "certificate", "issue_minter_cert", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "certificate", "issue_minter_cert", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := certificateUseCase.NewUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.IssueMinterCert(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expectedCert, result)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &certificateUseCaseMocks.MockCertificateUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("IssueMinterCert", ctx, input).
			Return(nil, governanceDomain.ErrNotGovernanceAuthority).
			Once()
		mockMetrics.On("RecordOperation", ctx, "certificate", "issue_minter_cert", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "certificate", "issue_minter_cert", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := certificateUseCase.NewUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.IssueMinterCert(ctx, input)

		assert.ErrorIs(t, err, governanceDomain.ErrNotGovernanceAuthority)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_InitCreditToken(t *testing.T) {
	ctx := context.Background()
	input := certificateUseCase.InitCreditTokenInput{
		Creator:  "minter-principal",
		Decimals: 2,
		Name:     "Forest Credits",
		Symbol:   "FRSTC",
		URI:      "https://example.com/forest-credits.json",
	}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &certificateUseCaseMocks.MockCertificateUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedToken := &domain.CreditToken{
			CreditMint: "credit-mint-address",
			Decimals:   2,
		}

		mockUseCase.On("InitCreditToken", ctx, input).Return(expectedToken, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "certificate", "init_credit_token", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "certificate", "init_credit_token", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := certificateUseCase.NewUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.InitCreditToken(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expectedToken, result)
		mockMetrics.AssertExpectations(t)
	})
}
