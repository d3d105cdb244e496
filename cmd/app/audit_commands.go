package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/carbonledger/cmd/app/commands"
	"github.com/allisson/carbonledger/internal/app"
	"github.com/allisson/carbonledger/internal/config"
)

func getAuditCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "list-audit-logs",
			Usage: "List audit log entries in sequence order",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:    "from-sequence",
					Aliases: []string{"s"},
					Value:   1,
					Usage:   "First sequence number to list",
				},
				&cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"l"},
					Value:   50,
					Usage:   "Maximum number of entries to list",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunListAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					uint64(cmd.Uint("from-sequence")),
					int(cmd.Int("limit")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Verify cryptographic integrity of the audit log chain",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditLogs(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
