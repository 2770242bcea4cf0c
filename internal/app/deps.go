package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviewatch/backend/internal/auth"
	"github.com/moviewatch/backend/internal/catalog"
	"github.com/moviewatch/backend/internal/config"
	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/handlers"
	"github.com/moviewatch/backend/internal/memstore"
	"github.com/moviewatch/backend/internal/middleware"
	"github.com/moviewatch/backend/internal/repositories"
)

// buildDependencies wires together concrete implementations used by the HTTP
// handlers. pool may be nil when neither the store nor the sessions use PostgreSQL.
// The returned cleanup releases anything opened here; the pool stays owned by the caller.
func buildDependencies(ctx context.Context, cfg config.Config, pool db.Pool) (handlers.Dependencies, func(), error) {
	cleanup := func() {}

	if needsDatabase(cfg) && pool == nil {
		return handlers.Dependencies{}, cleanup, errors.New("app: database pool required for postgres store or sessions")
	}

	deps := handlers.Dependencies{
		Cookie:      auth.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.Secure},
		AuthLimiter: middleware.NewKeyedRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, 0),
	}

	var movies catalog.Source
	switch cfg.Store {
	case config.StoreMemory:
		store := memstore.New()
		store.LoadCatalog(memstore.DevCatalog())
		deps.Users = store.Users()
		deps.Reviews = store.Reviews()
		deps.Watched = store.Watched()
		deps.Playlists = store.Playlists()
		movies = store.Movies()
	default:
		deps.Users = repositories.NewPostgresUserRepository(pool)
		deps.Reviews = repositories.NewPostgresReviewRepository(pool)
		deps.Watched = repositories.NewPostgresWatchedRepository(pool)
		deps.Playlists = repositories.NewPostgresPlaylistRepository(pool)
		movies = repositories.NewPostgresMovieRepository(pool)
	}

	if cfg.MovieCacheTTL > 0 {
		movies = catalog.NewCachingStore(movies, cfg.MovieCacheTTL)
	}
	deps.Movies = movies

	var sessionStore auth.SessionStore
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := auth.NewRedisClient(ctx, cfg.Session.RedisURL)
		if err != nil {
			return handlers.Dependencies{}, cleanup, fmt.Errorf("connect session redis: %w", err)
		}
		cleanup = func() { _ = client.Close() }
		sessionStore = auth.NewRedisSessionStore(client)
	case config.SessionBackendMemory:
		sessionStore = auth.NewInMemorySessionStore()
	default:
		sessionStore = repositories.NewPostgresSessionStore(pool)
	}
	deps.Sessions = auth.NewManager(cfg.Session.TTL, sessionStore)

	return deps, cleanup, nil
}
