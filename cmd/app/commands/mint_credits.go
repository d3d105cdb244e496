package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// RunMintCredits mints credit tokens against a minter's available quota.
// The minted amount moves from the available counter to the minted counter.
//
// Requirements: Database must be migrated, the creator certified, and a
// quota granted.
func RunMintCredits(
	ctx context.Context,
	useCase ledgerUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	creator, certMint string,
	amount uint64,
	format string,
) error {
	logger.Info("minting credits",
		slog.String("creator", creator),
		slog.String("cert_mint", certMint),
		slog.Uint64("amount", amount),
	)

	ledger, err := useCase.MintCredits(ctx, ledgerUseCase.MintCreditsInput{
		Creator:  creator,
		CertMint: certMint,
		Amount:   amount,
	})
	if err != nil {
		return fmt.Errorf("failed to mint credits: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, ledger); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputLedgerText(writer, "Credits minted", ledger)
	}

	logger.Info("credits minted successfully",
		slog.String("cert_mint", ledger.CertMint),
		slog.Uint64("available_credits", ledger.Available),
		slog.Uint64("minted_credits", ledger.Minted),
	)

	return nil
}
