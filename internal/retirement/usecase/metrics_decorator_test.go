package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	"github.com/allisson/carbonledger/internal/metrics"
	"github.com/allisson/carbonledger/internal/retirement/domain"
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
	retirementUseCaseMocks "github.com/allisson/carbonledger/internal/retirement/usecase/mocks"
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

func TestMetricsDecorator_Retire(t *testing.T) {
	ctx := context.Background()
	input := retirementUseCase.RetireInput{
		Consumer:   "consumer-principal",
		CreditMint: "credit-mint-address",
		Amount:     10,
	}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &retirementUseCaseMocks.MockRetirementUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedReceipt := &domain.Receipt{
			CertMint:   "retirement-cert-mint",
			CreditMint: input.CreditMint,
			Consumer:   input.Consumer,
			Retired:    input.Amount,
		}

		mockUseCase.On("Retire", ctx, input).Return(expectedReceipt, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "retirement", "retire", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "retirement", "retire", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := retirementUseCase.NewUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Retire(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, expectedReceipt, result)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &retirementUseCaseMocks.MockRetirementUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Retire", ctx, input).Return(nil, ledgerDomain.ErrInvalidAmount).Once()
		mockMetrics.On("RecordOperation", ctx, "retirement", "retire", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "retirement", "retire", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := retirementUseCase.NewUseCaseWithMetrics(mockUseCase, mockMetrics)
		result, err := decorator.Retire(ctx, input)

		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAmount)
		assert.Nil(t, result)
		mockMetrics.AssertExpectations(t)
	})
}
