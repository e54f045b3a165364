package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lovelifenow/admin-api/cmd/app/commands"
	"github.com/lovelifenow/admin-api/internal/app"
	"github.com/lovelifenow/admin-api/internal/config"
)

func getOAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "oauth-status",
			Usage: "Show the stored CRM OAuth token record",
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

				tokenRepo, err := container.OAuthTokenRepository()
				if err != nil {
					return err
				}

				return commands.RunOAuthStatus(
					ctx,
					tokenRepo,
					cfg,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
