package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
)

// RunListAuditLogs lists audit log entries in sequence order starting from
// the given sequence number.
//
// Requirements: Database must be migrated and accessible.
func RunListAuditLogs(
	ctx context.Context,
	useCase auditUseCase.UseCase,
	logger *slog.Logger,
	writer io.Writer,
	fromSequence uint64,
	limit int,
	format string,
) error {
	logger.Info("listing audit logs",
		slog.Uint64("from_sequence", fromSequence),
		slog.Int("limit", limit),
	)

	entries, err := useCase.List(ctx, fromSequence, limit)
	if err != nil {
		return fmt.Errorf("failed to list audit logs: %w", err)
	}

	if format == "json" {
		if err := outputJSON(writer, entries); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		if len(entries) == 0 {
			_, _ = fmt.Fprintln(writer, "No audit log entries found")
		}
		for _, entry := range entries {
			_, _ = fmt.Fprintf(writer, "#%d %s %s actor=%s resource=%s signature=%s\n",
				entry.Sequence,
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
				entry.Action,
				entry.Actor,
				entry.Resource,
				hex.EncodeToString(entry.Signature),
			)
		}
	}

	logger.Info("audit logs listed", slog.Int("entries", len(entries)))
	return nil
}
