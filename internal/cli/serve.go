package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/pageza/mealfinder/config"
	"github.com/pageza/mealfinder/internal/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web page and JSON API",
		Description: `Starts the HTTP server. Configuration comes from the environment
(SERVER_HOST, SERVER_PORT, REDIS_URL, ...); a .env file is read when present.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cmd.IsSet("base-url") {
				cfg.MealDBBaseURL = cmd.String("base-url")
			}

			srv, err := server.NewFromConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			return srv.Run(ctx)
		},
	}
}
