package usecase

import (
	"context"
	"time"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	"github.com/allisson/carbonledger/internal/metrics"
)

// governanceUseCaseWithMetrics decorates the governance UseCase with metrics instrumentation.
type governanceUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a governance UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &governanceUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Initialize records metrics for governance initialization.
func (g *governanceUseCaseWithMetrics) Initialize(
	ctx context.Context,
	input InitializeInput,
) (*authorityDomain.Record, error) {
	start := time.Now()
	record, err := g.next.Initialize(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "governance", "initialize", status)
	g.metrics.RecordDuration(ctx, "governance", "initialize", time.Since(start), status)

	return record, err
}

// Get records metrics for governance record reads.
func (g *governanceUseCaseWithMetrics) Get(ctx context.Context) (*authorityDomain.Record, error) {
	start := time.Now()
	record, err := g.next.Get(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "governance", "get", status)
	g.metrics.RecordDuration(ctx, "governance", "get", time.Since(start), status)

	return record, err
}

// RequireAuthority delegates without instrumentation. It runs inside other
// workflows that already record their own operation metrics.
func (g *governanceUseCaseWithMetrics) RequireAuthority(
	ctx context.Context,
	principal string,
) (*authorityDomain.Record, error) {
	return g.next.RequireAuthority(ctx, principal)
}
