package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/models"
)

// PostgresWatchedRepository provides PostgreSQL-backed persistence for watched markers.
type PostgresWatchedRepository struct {
	pool db.Pool
}

// NewPostgresWatchedRepository constructs a watched-movie repository backed by PostgreSQL.
func NewPostgresWatchedRepository(pool db.Pool) *PostgresWatchedRepository {
	return &PostgresWatchedRepository{pool: pool}
}

// Create inserts the marker unless the (user, movie) pair already has one.
func (r *PostgresWatchedRepository) Create(ctx context.Context, watched models.WatchedMovie) (models.WatchedMovie, bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.WatchedMovie{}, false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if watched.CreatedAt.IsZero() {
		watched.CreatedAt = time.Now().UTC()
	}

	var (
		out     models.WatchedMovie
		created bool
	)
	err = writeRetry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, created, err = insertWatched(ctx, conn, watched)
		return err
	}, nil)
	if err != nil {
		return models.WatchedMovie{}, false, err
	}
	return out, created, nil
}

func insertWatched(ctx context.Context, conn *pgxpool.Conn, watched models.WatchedMovie) (models.WatchedMovie, bool, error) {
	var out models.WatchedMovie
	err := conn.QueryRow(ctx, `
        INSERT INTO watched_movies (user_id, movie_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, movie_id) DO NOTHING
        RETURNING user_id, movie_id, created_at
    `, watched.UserID, watched.MovieID, watched.CreatedAt).Scan(&out.UserID, &out.MovieID, &out.CreatedAt)
	if err == nil {
		return out, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.WatchedMovie{}, false, translate("insert watched movie", err)
	}

	err = conn.QueryRow(ctx, `
        SELECT user_id, movie_id, created_at
        FROM watched_movies
        WHERE user_id = $1 AND movie_id = $2
    `, watched.UserID, watched.MovieID).Scan(&out.UserID, &out.MovieID, &out.CreatedAt)
	if err != nil {
		return models.WatchedMovie{}, false, translate("select watched movie", err)
	}
	return out, false, nil
}

// Delete removes the marker and returns it, or ErrNotFound when there was none.
func (r *PostgresWatchedRepository) Delete(ctx context.Context, userID, movieID string) (models.WatchedMovie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.WatchedMovie{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var out models.WatchedMovie
	err = conn.QueryRow(ctx, `
        DELETE FROM watched_movies
        WHERE user_id = $1 AND movie_id = $2
        RETURNING user_id, movie_id, created_at
    `, userID, movieID).Scan(&out.UserID, &out.MovieID, &out.CreatedAt)
	if err != nil {
		return models.WatchedMovie{}, translate("delete watched movie", err)
	}
	return out, nil
}

// Exists reports whether the user has marked the movie watched.
func (r *PostgresWatchedRepository) Exists(ctx context.Context, userID, movieID string) (bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var exists bool
	err = conn.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM watched_movies WHERE user_id = $1 AND movie_id = $2)
    `, userID, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("select watched movie: %w", err)
	}
	return exists, nil
}

var _ WatchedRepository = (*PostgresWatchedRepository)(nil)
