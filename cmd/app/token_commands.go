package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/branca/cmd/app/commands"
	tokenDomain "github.com/allisson/branca/internal/token/domain"
	tokenService "github.com/allisson/branca/internal/token/service"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode a token and print its payload in base62",
			ArgsUsage: "<base62-key> <base62-token>",
			Flags: []cli.Flag{
				&cli.Uint32Flag{
					Name:  "ttl",
					Value: 0,
					Usage: "Reject tokens older than this many seconds (0 disables the check)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 2); err != nil {
					return err
				}
				return commands.RunDecode(
					tokenService.NewCodec(),
					commands.DefaultIO().Writer,
					cmd.Args().Get(0),
					cmd.Args().Get(1),
					cmd.Uint32("ttl"),
				)
			},
		},
		{
			Name:      "encode",
			Usage:     "Encode a base62 payload into a token",
			ArgsUsage: "<base62-key> <base62-payload>",
			Flags: []cli.Flag{
				&cli.Uint32Flag{
					Name:    "timestamp",
					Aliases: []string{"t"},
					Usage:   "Token timestamp in Unix seconds (defaults to now)",
				},
				&cli.StringFlag{
					Name:  "nonce",
					Usage: "Fixed 24-byte nonce in hex, for reproducing test vectors only",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 2); err != nil {
					return err
				}

				timestamp := cmd.Uint32("timestamp")
				if !cmd.IsSet("timestamp") {
					var err error
					timestamp, err = tokenDomain.TimestampFromTime(time.Now())
					if err != nil {
						return err
					}
				}

				return commands.RunEncode(
					tokenService.NewCodec(),
					commands.DefaultIO().Writer,
					cmd.Args().Get(0),
					cmd.Args().Get(1),
					timestamp,
					cmd.String("nonce"),
				)
			},
		},
		{
			Name:      "inspect",
			Usage:     "Print the header of a token",
			ArgsUsage: "<base62-token>",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "key",
					Aliases: []string{"k"},
					Usage:   "Base62 key; when set the token is authenticated before printing",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1); err != nil {
					return err
				}
				return commands.RunInspect(
					tokenService.NewCodec(),
					commands.DefaultIO().Writer,
					cmd.Args().Get(0),
					cmd.String("key"),
					cmd.String("format"),
				)
			},
		},
	}
}

// requireArgs fails unless exactly n positional arguments were given.
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.NArg() != n {
		return fmt.Errorf("%s expects %d argument(s): %s", cmd.Name, n, cmd.ArgsUsage)
	}
	return nil
}
