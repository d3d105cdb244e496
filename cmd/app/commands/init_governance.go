package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
)

// RunInitGovernance initializes the governance singleton with its authority.
// Should only be run once during initial system setup; a second run fails
// because the singleton already exists.
//
// Requirements: Database must be migrated and accessible.
func RunInitGovernance(
	ctx context.Context,
	useCase governanceUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	authority string,
	format string,
) error {
	logger.Info("initializing governance", slog.String("authority", authority))

	record, err := useCase.Initialize(ctx, governanceUseCase.InitializeInput{
		Authority: authority,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize governance: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, record); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputRecordText(writer, "Governance initialized", record)
	}

	logger.Info("governance initialized successfully",
		slog.String("address", record.Address),
		slog.String("authority", record.Owner),
	)

	return nil
}

// outputRecordText outputs an authority record in human-readable text format.
func outputRecordText(writer io.Writer, title string, record *authorityDomain.Record) {
	_, _ = fmt.Fprintf(writer, "%s\n", title)
	_, _ = fmt.Fprintf(writer, "  Address: %s\n", record.Address)
	_, _ = fmt.Fprintf(writer, "  Role: %s\n", record.Role)
	_, _ = fmt.Fprintf(writer, "  Owner: %s\n", record.Owner)
	_, _ = fmt.Fprintf(writer, "  Bump: %d\n", record.Bump)
}
