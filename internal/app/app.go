package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/moviewatch/backend/internal/config"
	"github.com/moviewatch/backend/internal/logging"
)

// Run bootstraps the moviewatch backend with the given argv.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

// NewCommand builds the moviewatch command tree.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "moviewatch",
		Usage: "Movie watchlist backend",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveAction,
			},
			{
				Name:      "migrate",
				Usage:     "Apply or inspect schema migrations",
				ArgsUsage: "[up|status]",
				Action:    migrateAction,
				Commands: []*cli.Command{
					{Name: "up", Usage: "Apply pending migrations", Action: migrateAction},
					{Name: "status", Usage: "List applied and pending migrations", Action: migrateAction},
				},
			},
			{
				Name:      "seed",
				Usage:     "Load a seed file such as seeds/dev_seed.sql",
				ArgsUsage: "<name>",
				Action:    seedAction,
			},
		},
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	return serve(ctx, cfg, logger)
}

func migrateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	command := "up"
	switch {
	case cmd.Name == "up" || cmd.Name == "status":
		command = cmd.Name
	case cmd.Args().Present():
		command = cmd.Args().First()
	}

	return runMigrations(ctx, cfg, command, output(cmd))
}

func seedAction(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Args().Present() {
		return fmt.Errorf("expected seed name (e.g. dev)")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	return runSeed(ctx, cfg, cmd.Args().First(), output(cmd))
}

func output(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
