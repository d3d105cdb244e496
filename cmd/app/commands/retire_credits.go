package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
)

// RunRetireCredits burns credit tokens and issues a retirement certificate
// to the consumer. Only a consumer certificate holder may retire credits.
//
// Requirements: Database must be migrated and the consumer certified.
func RunRetireCredits(
	ctx context.Context,
	useCase retirementUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	consumer, creditMint string,
	amount uint64,
	format string,
) error {
	logger.Info("retiring credits",
		slog.String("consumer", consumer),
		slog.String("credit_mint", creditMint),
		slog.Uint64("amount", amount),
	)

	receipt, err := useCase.Retire(ctx, retirementUseCase.RetireInput{
		Consumer:   consumer,
		CreditMint: creditMint,
		Amount:     amount,
	})
	if err != nil {
		return fmt.Errorf("failed to retire credits: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, receipt); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Credits retired\n")
		_, _ = fmt.Fprintf(writer, "  Retirement cert mint: %s\n", receipt.CertMint)
		_, _ = fmt.Fprintf(writer, "  Credit mint: %s\n", receipt.CreditMint)
		_, _ = fmt.Fprintf(writer, "  Consumer: %s\n", receipt.Consumer)
		_, _ = fmt.Fprintf(writer, "  Retired credits: %d\n", receipt.Retired)
	}

	logger.Info("credits retired successfully",
		slog.String("cert_mint", receipt.CertMint),
		slog.Uint64("retired_credits", receipt.Retired),
	)

	return nil
}
