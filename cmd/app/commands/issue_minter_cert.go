package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// IssueMinterCertParams holds the flags for minter certificate issuance.
type IssueMinterCertParams struct {
	Authority string
	Receiver  string
	Name      string
	Symbol    string
	URI       string
}

// RunIssueMinterCert issues a minter certificate to a receiver. Only the
// governance authority may issue minter certificates.
//
// Requirements: Database must be migrated and governance initialized.
func RunIssueMinterCert(
	ctx context.Context,
	useCase certificateUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	params IssueMinterCertParams,
	format string,
) error {
	logger.Info("issuing minter certificate",
		slog.String("authority", params.Authority),
		slog.String("receiver", params.Receiver),
	)

	certificate, err := useCase.IssueMinterCert(ctx, certificateUseCase.IssueMinterCertInput{
		Authority: params.Authority,
		Receiver:  params.Receiver,
		Name:      params.Name,
		Symbol:    params.Symbol,
		URI:       params.URI,
	})
	if err != nil {
		return fmt.Errorf("failed to issue minter certificate: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, certificate); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Minter certificate issued\n")
		_, _ = fmt.Fprintf(writer, "  Cert mint: %s\n", certificate.CertMint)
		_, _ = fmt.Fprintf(writer, "  Receiver: %s\n", certificate.Receiver)
		_, _ = fmt.Fprintf(writer, "  Controller: %s\n", certificate.Record.Address)
	}

	logger.Info("minter certificate issued successfully",
		slog.String("cert_mint", certificate.CertMint),
		slog.String("receiver", certificate.Receiver),
	)

	return nil
}
