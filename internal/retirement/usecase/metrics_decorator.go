package usecase

import (
	"context"
	"time"

	"github.com/allisson/carbonledger/internal/metrics"
	"github.com/allisson/carbonledger/internal/retirement/domain"
)

// retirementUseCaseWithMetrics decorates the retirement UseCase with metrics instrumentation.
type retirementUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a retirement UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &retirementUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Retire records metrics for credit retirement operations.
func (r *retirementUseCaseWithMetrics) Retire(ctx context.Context, input RetireInput) (*domain.Receipt, error) {
	start := time.Now()
	receipt, err := r.next.Retire(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "retirement", "retire", status)
	r.metrics.RecordDuration(ctx, "retirement", "retire", time.Since(start), status)

	return receipt, err
}
