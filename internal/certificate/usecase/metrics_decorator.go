package usecase

import (
	"context"
	"time"

	"github.com/allisson/carbonledger/internal/certificate/domain"
	"github.com/allisson/carbonledger/internal/metrics"
)

// certificateUseCaseWithMetrics decorates the certificate UseCase with metrics instrumentation.
type certificateUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a certificate UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &certificateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// IssueMinterCert records metrics for minter certificate issuance.
func (c *certificateUseCaseWithMetrics) IssueMinterCert(
	ctx context.Context,
	input IssueMinterCertInput,
) (*domain.Certificate, error) {
	start := time.Now()
	cert, err := c.next.IssueMinterCert(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "certificate", "issue_minter_cert", status)
	c.metrics.RecordDuration(ctx, "certificate", "issue_minter_cert", time.Since(start), status)

	return cert, err
}

// IssueConsumerCert records metrics for consumer certificate issuance.
func (c *certificateUseCaseWithMetrics) IssueConsumerCert(
	ctx context.Context,
	input IssueConsumerCertInput,
) (*domain.Certificate, error) {
	start := time.Now()
	cert, err := c.next.IssueConsumerCert(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "certificate", "issue_consumer_cert", status)
	c.metrics.RecordDuration(ctx, "certificate", "issue_consumer_cert", time.Since(start), status)

	return cert, err
}

// InitCreditToken records metrics for credit token initialization.
func (c *certificateUseCaseWithMetrics) InitCreditToken(
	ctx context.Context,
	input InitCreditTokenInput,
) (*domain.CreditToken, error) {
	start := time.Now()
	token, err := c.next.InitCreditToken(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "certificate", "init_credit_token", status)
	c.metrics.RecordDuration(ctx, "certificate", "init_credit_token", time.Since(start), status)

	return token, err
}
