package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/carbonledger/cmd/app/commands"
	"github.com/allisson/carbonledger/internal/app"
	"github.com/allisson/carbonledger/internal/config"
)

func getLedgerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "init-governance",
			Usage: "Initialize the governance singleton with its authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Principal that will hold governance authority",
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

				governanceUseCase, err := container.GovernanceUseCase()
				if err != nil {
					return err
				}

				return commands.RunInitGovernance(
					ctx,
					governanceUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("authority"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-minter-cert",
			Usage: "Issue a minter certificate to a receiver",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Governance authority principal",
				},
				&cli.StringFlag{
					Name:     "receiver",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Principal that will hold the minter certificate",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Certificate token name",
				},
				&cli.StringFlag{
					Name:     "symbol",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Certificate token symbol",
				},
				&cli.StringFlag{
					Name:  "uri",
					Usage: "Certificate metadata URI",
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

				certificateUseCase, err := container.CertificateUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueMinterCert(
					ctx,
					certificateUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.IssueMinterCertParams{
						Authority: cmd.String("authority"),
						Receiver:  cmd.String("receiver"),
						Name:      cmd.String("name"),
						Symbol:    cmd.String("symbol"),
						URI:       cmd.String("uri"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-consumer-cert",
			Usage: "Issue a consumer certificate to a receiver",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "minter",
					Aliases:  []string{"m"},
					Required: true,
					Usage:    "Minter certificate holder principal",
				},
				&cli.StringFlag{
					Name:     "receiver",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Principal that will hold the consumer certificate",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Certificate token name",
				},
				&cli.StringFlag{
					Name:     "symbol",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Certificate token symbol",
				},
				&cli.StringFlag{
					Name:  "uri",
					Usage: "Certificate metadata URI",
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

				certificateUseCase, err := container.CertificateUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueConsumerCert(
					ctx,
					certificateUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.IssueConsumerCertParams{
						Minter:   cmd.String("minter"),
						Receiver: cmd.String("receiver"),
						Name:     cmd.String("name"),
						Symbol:   cmd.String("symbol"),
						URI:      cmd.String("uri"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "init-credit-token",
			Usage: "Initialize a credit token mint under a minter certificate",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "creator",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Minter certificate holder principal",
				},
				&cli.UintFlag{
					Name:    "decimals",
					Aliases: []string{"d"},
					Value:   0,
					Usage:   "Credit token decimals",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Credit token name",
				},
				&cli.StringFlag{
					Name:     "symbol",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Credit token symbol",
				},
				&cli.StringFlag{
					Name:  "uri",
					Usage: "Credit token metadata URI",
				},
				&cli.StringFlag{
					Name:  "transfer-hook",
					Usage: "Optional transfer hook program address",
				},
				&cli.UintFlag{
					Name:  "transfer-fee-basis-points",
					Usage: "Optional transfer fee in basis points",
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

				certificateUseCase, err := container.CertificateUseCase()
				if err != nil {
					return err
				}

				params := commands.InitCreditTokenParams{
					Creator:  cmd.String("creator"),
					Decimals: uint8(cmd.Uint("decimals")),
					Name:     cmd.String("name"),
					Symbol:   cmd.String("symbol"),
					URI:      cmd.String("uri"),
				}
				if hook := cmd.String("transfer-hook"); hook != "" {
					params.TransferHook = &hook
				}
				if cmd.IsSet("transfer-fee-basis-points") {
					fee := uint32(cmd.Uint("transfer-fee-basis-points"))
					params.TransferFeeBasisPoints = &fee
				}

				return commands.RunInitCreditToken(
					ctx,
					certificateUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					params,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "set-quota",
			Usage: "Set the available credit quota for a minter's ledger",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "authority",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Governance authority principal",
				},
				&cli.StringFlag{
					Name:     "cert-mint",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Minter certificate mint address",
				},
				&cli.UintFlag{
					Name:     "credits",
					Required: true,
					Usage:    "New available credit quota",
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

				ledgerUseCase, err := container.LedgerUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetQuota(
					ctx,
					ledgerUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("authority"),
					cmd.String("cert-mint"),
					uint64(cmd.Uint("credits")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "mint-credits",
			Usage: "Mint credit tokens against a minter's quota",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "creator",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Minter certificate holder principal",
				},
				&cli.StringFlag{
					Name:     "cert-mint",
					Required: true,
					Usage:    "Minter certificate mint address",
				},
				&cli.UintFlag{
					Name:     "amount",
					Aliases:  []string{"m"},
					Required: true,
					Usage:    "Number of credits to mint",
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

				ledgerUseCase, err := container.LedgerUseCase()
				if err != nil {
					return err
				}

				return commands.RunMintCredits(
					ctx,
					ledgerUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("creator"),
					cmd.String("cert-mint"),
					uint64(cmd.Uint("amount")),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "retire-credits",
			Usage: "Retire credit tokens and issue a retirement certificate",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "consumer",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Consumer certificate holder principal",
				},
				&cli.StringFlag{
					Name:     "credit-mint",
					Required: true,
					Usage:    "Credit token mint address",
				},
				&cli.UintFlag{
					Name:     "amount",
					Aliases:  []string{"m"},
					Required: true,
					Usage:    "Number of credits to retire",
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

				retirementUseCase, err := container.RetirementUseCase()
				if err != nil {
					return err
				}

				return commands.RunRetireCredits(
					ctx,
					retirementUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("consumer"),
					cmd.String("credit-mint"),
					uint64(cmd.Uint("amount")),
					cmd.String("format"),
				)
			},
		},
	}
}
