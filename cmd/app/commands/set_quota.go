package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ledgerDomain "github.com/allisson/carbonledger/internal/ledger/domain"
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// RunSetQuota sets the available credit quota on a minter's ledger. Only the
// governance authority may set quotas; the new value replaces the previous
// one unconditionally.
//
// Requirements: Database must be migrated and governance initialized.
func RunSetQuota(
	ctx context.Context,
	useCase ledgerUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	authority, certMint string,
	credits uint64,
	format string,
) error {
	logger.Info("setting credit quota",
		slog.String("authority", authority),
		slog.String("cert_mint", certMint),
		slog.Uint64("credits", credits),
	)

	ledger, err := useCase.SetQuota(ctx, ledgerUseCase.SetQuotaInput{
		Authority: authority,
		CertMint:  certMint,
		NewCredit: credits,
	})
	if err != nil {
		return fmt.Errorf("failed to set quota: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, ledger); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputLedgerText(writer, "Quota updated", ledger)
	}

	logger.Info("quota set successfully",
		slog.String("cert_mint", ledger.CertMint),
		slog.Uint64("available_credits", ledger.Available),
	)

	return nil
}

// outputLedgerText outputs ledger counters in human-readable text format.
func outputLedgerText(writer io.Writer, title string, ledger *ledgerDomain.Ledger) {
	_, _ = fmt.Fprintf(writer, "%s\n", title)
	_, _ = fmt.Fprintf(writer, "  Cert mint: %s\n", ledger.CertMint)
	_, _ = fmt.Fprintf(writer, "  Available credits: %d\n", ledger.Available)
	_, _ = fmt.Fprintf(writer, "  Minted credits: %d\n", ledger.Minted)
}
