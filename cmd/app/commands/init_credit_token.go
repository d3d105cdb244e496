package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
)

// InitCreditTokenParams holds the flags for credit token initialization.
type InitCreditTokenParams struct {
	Creator                string
	Decimals               uint8
	Name                   string
	Symbol                 string
	URI                    string
	TransferHook           *string
	TransferFeeBasisPoints *uint32
}

// RunInitCreditToken initializes a credit token mint under a minter
// certificate. Only a minter certificate holder may create credit tokens.
//
// Requirements: Database must be migrated and the creator certified.
func RunInitCreditToken(
	ctx context.Context,
	useCase certificateUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	params InitCreditTokenParams,
	format string,
) error {
	logger.Info("initializing credit token",
		slog.String("creator", params.Creator),
		slog.String("symbol", params.Symbol),
	)

	creditToken, err := useCase.InitCreditToken(ctx, certificateUseCase.InitCreditTokenInput{
		Creator:                params.Creator,
		Decimals:               params.Decimals,
		Name:                   params.Name,
		Symbol:                 params.Symbol,
		URI:                    params.URI,
		TransferHook:           params.TransferHook,
		TransferFeeBasisPoints: params.TransferFeeBasisPoints,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize credit token: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, creditToken); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Credit token initialized\n")
		_, _ = fmt.Fprintf(writer, "  Credit mint: %s\n", creditToken.CreditMint)
		_, _ = fmt.Fprintf(writer, "  Decimals: %d\n", creditToken.Decimals)
		_, _ = fmt.Fprintf(writer, "  Mint authority: %s\n", creditToken.MintAuthority.Address)
	}

	logger.Info("credit token initialized successfully",
		slog.String("credit_mint", creditToken.CreditMint),
	)

	return nil
}
