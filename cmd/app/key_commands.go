package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/branca/cmd/app/commands"
	tokenService "github.com/allisson/branca/internal/token/service"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Generate a new 32-byte Branca key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Value:   "",
					Usage:   "Key ID (e.g., prod-key-2026)",
				},
				&cli.StringFlag{
					Name:    "kms-provider",
					Usage:   "KMS provider name (e.g., localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
					Sources: cli.EnvVars("KMS_PROVIDER"),
				},
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Usage:   "KMS key URI; when set the key is printed encrypted with KMS",
					Sources: cli.EnvVars("KMS_KEY_URI"),
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateKey(
					ctx,
					tokenService.NewKMSService(),
					slog.New(slog.NewJSONHandler(os.Stderr, nil)),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
