package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/moviewatch/backend/internal/app"
)

func main() {
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("moviewatch exited", "error", err)
		os.Exit(1)
	}
}
