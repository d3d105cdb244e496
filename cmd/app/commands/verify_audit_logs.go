package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
)

// RunVerifyAuditLogs walks the full audit chain and verifies every signature
// and previous-hash link for tamper detection.
//
// Requirements: Database must be migrated and the signing key configured.
func RunVerifyAuditLogs(
	ctx context.Context,
	useCase auditUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("verifying audit log chain")

	result, err := useCase.VerifyChain(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, result); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Audit Log Chain Verification\n")
		_, _ = fmt.Fprintf(writer, "  Entries checked: %d\n", result.Entries)
		_, _ = fmt.Fprintf(writer, "  Last sequence: %d\n", result.LastSeq)
		_, _ = fmt.Fprintf(writer, "  Result: OK\n")
	}

	logger.Info("verification completed",
		slog.Int("entries", result.Entries),
		slog.Uint64("last_sequence", result.LastSeq),
	)

	return nil
}
