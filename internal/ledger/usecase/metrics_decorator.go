package usecase

import (
	"context"
	"time"

	"github.com/allisson/carbonledger/internal/ledger/domain"
	"github.com/allisson/carbonledger/internal/metrics"
)

// ledgerUseCaseWithMetrics decorates the ledger UseCase with metrics instrumentation.
type ledgerUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a ledger UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &ledgerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// MintCredits records metrics for credit minting operations.
func (l *ledgerUseCaseWithMetrics) MintCredits(
	ctx context.Context,
	input MintCreditsInput,
) (*domain.Ledger, error) {
	start := time.Now()
	ledger, err := l.next.MintCredits(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "ledger", "mint_credits", status)
	l.metrics.RecordDuration(ctx, "ledger", "mint_credits", time.Since(start), status)

	return ledger, err
}

// SetQuota records metrics for quota updates.
func (l *ledgerUseCaseWithMetrics) SetQuota(
	ctx context.Context,
	input SetQuotaInput,
) (*domain.Ledger, error) {
	start := time.Now()
	ledger, err := l.next.SetQuota(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "ledger", "set_quota", status)
	l.metrics.RecordDuration(ctx, "ledger", "set_quota", time.Since(start), status)

	return ledger, err
}

// GetLedger records metrics for ledger snapshot reads.
func (l *ledgerUseCaseWithMetrics) GetLedger(ctx context.Context, certMint string) (*domain.Ledger, error) {
	start := time.Now()
	ledger, err := l.next.GetLedger(ctx, certMint)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "ledger", "get_ledger", status)
	l.metrics.RecordDuration(ctx, "ledger", "get_ledger", time.Since(start), status)

	return ledger, err
}
