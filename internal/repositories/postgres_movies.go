package repositories

import (
	"context"
	"fmt"

	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/models"
)

const movieColumns = `id, name, release_date, director, description, video_file_path, banner_file_path`

// PostgresMovieRepository provides read access to the movie catalog.
type PostgresMovieRepository struct {
	pool db.Pool
}

// NewPostgresMovieRepository constructs a movie repository backed by PostgreSQL.
func NewPostgresMovieRepository(pool db.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{pool: pool}
}

// FindByID fetches a movie by id.
func (r *PostgresMovieRepository) FindByID(ctx context.Context, id string) (models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Movie{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	movie, err := scanMovie(conn.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if err != nil {
		return models.Movie{}, translate("select movie", err)
	}
	return movie, nil
}

// List returns the whole catalog ordered by name.
func (r *PostgresMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}

func scanMovie(row scanner) (models.Movie, error) {
	var movie models.Movie
	err := row.Scan(&movie.ID, &movie.Name, &movie.ReleaseDate, &movie.Director, &movie.Description, &movie.VideoFilePath, &movie.BannerFilePath)
	return movie, err
}

var _ MovieRepository = (*PostgresMovieRepository)(nil)
