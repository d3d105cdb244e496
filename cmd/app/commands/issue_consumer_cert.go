package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// IssueConsumerCertParams holds the flags for consumer certificate issuance.
type IssueConsumerCertParams struct {
	Minter   string
	Receiver string
	Name     string
	Symbol   string
	URI      string
}

// RunIssueConsumerCert issues a consumer certificate to a receiver. Only a
// minter certificate holder may issue consumer certificates.
//
// Requirements: Database must be migrated and the minter certified.
func RunIssueConsumerCert(
	ctx context.Context,
	useCase certificateUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	params IssueConsumerCertParams,
	format string,
) error {
	logger.Info("issuing consumer certificate",
		slog.String("minter", params.Minter),
		slog.String("receiver", params.Receiver),
	)

	certificate, err := useCase.IssueConsumerCert(ctx, certificateUseCase.IssueConsumerCertInput{
		Minter:   params.Minter,
		Receiver: params.Receiver,
		Name:     params.Name,
		Symbol:   params.Symbol,
		URI:      params.URI,
	})
	if err != nil {
		return fmt.Errorf("failed to issue consumer certificate: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, certificate); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Consumer certificate issued\n")
		_, _ = fmt.Fprintf(writer, "  Cert mint: %s\n", certificate.CertMint)
		_, _ = fmt.Fprintf(writer, "  Receiver: %s\n", certificate.Receiver)
		_, _ = fmt.Fprintf(writer, "  Controller: %s\n", certificate.Record.Address)
	}

	logger.Info("consumer certificate issued successfully",
		slog.String("cert_mint", certificate.CertMint),
		slog.String("receiver", certificate.Receiver),
	)

	return nil
}
