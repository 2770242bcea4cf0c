package app

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/moviewatch/backend/internal/config"
	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/handlers"
	"github.com/moviewatch/backend/internal/httpserver"
	"github.com/moviewatch/backend/internal/middleware"
)

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var pool db.Pool
	if needsDatabase(cfg) {
		pgPool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pgPool.Close()
		pool = pgPool
	}

	deps, cleanup, err := buildDependencies(ctx, cfg, pool)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := httpserver.New(cfg.AppPort, newHandler(deps, logger))

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting http server",
		"port", cfg.AppPort,
		"store", cfg.Store,
		"sessionBackend", cfg.Session.Backend,
		"movieCacheTTL", cfg.MovieCacheTTL,
	)

	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("http server stopped")
	return nil
}

func newHandler(deps handlers.Dependencies, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)
	return middleware.RequestLogger(logger)(mux)
}

func needsDatabase(cfg config.Config) bool {
	return cfg.Store == config.StorePostgres || cfg.Session.Backend == config.SessionBackendPostgres
}
