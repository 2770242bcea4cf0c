package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/models"
)

const reviewColumns = `id, user_id, movie_id, rating, comment, user_name, user_image, created_at, updated_at`

// PostgresReviewRepository provides PostgreSQL-backed persistence for reviews.
type PostgresReviewRepository struct {
	pool db.Pool
}

// NewPostgresReviewRepository constructs a review repository backed by PostgreSQL.
func NewPostgresReviewRepository(pool db.Pool) *PostgresReviewRepository {
	return &PostgresReviewRepository{pool: pool}
}

// Upsert relies on the (user_id, movie_id) unique constraint: the insert is a
// no-op when a review exists, in which case the existing row is updated in place.
// Two concurrent submissions for the same pair therefore leave a single row.
// Serialization conflicts between such submissions are retried.
func (r *PostgresReviewRepository) Upsert(ctx context.Context, review models.Review) (models.Review, bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Review{}, false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}

	var (
		saved   models.Review
		created bool
	)
	err = writeRetry.Do(ctx, func(ctx context.Context) error {
		var err error
		saved, created, err = upsertReview(ctx, conn, review, now)
		return err
	}, nil)
	if err != nil {
		return models.Review{}, false, err
	}
	return saved, created, nil
}

func upsertReview(ctx context.Context, conn *pgxpool.Conn, review models.Review, now time.Time) (models.Review, bool, error) {
	inserted, err := scanReview(conn.QueryRow(ctx, `
        INSERT INTO reviews (id, user_id, movie_id, rating, comment, user_name, user_image, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
        ON CONFLICT (user_id, movie_id) DO NOTHING
        RETURNING `+reviewColumns,
		review.ID, review.UserID, review.MovieID, review.Rating, review.Comment, review.UserName, review.UserImage, review.CreatedAt))
	if err == nil {
		return inserted, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.Review{}, false, translate("insert review", err)
	}

	updated, err := scanReview(conn.QueryRow(ctx, `
        UPDATE reviews
        SET rating = $3, comment = $4, updated_at = $5
        WHERE user_id = $1 AND movie_id = $2
        RETURNING `+reviewColumns,
		review.UserID, review.MovieID, review.Rating, review.Comment, now))
	if err != nil {
		return models.Review{}, false, translate("update review", err)
	}
	return updated, false, nil
}

// ListByMovie returns all reviews for a movie, oldest first.
func (r *PostgresReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE movie_id = $1 ORDER BY created_at, id`, movieID)
}

// ListByUser returns all reviews written by a user, newest first.
func (r *PostgresReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
}

// RatingsForMovie returns the bare ratings for a movie.
func (r *PostgresReviewRepository) RatingsForMovie(ctx context.Context, movieID string) ([]models.Rating, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT rating FROM reviews WHERE movie_id = $1 ORDER BY created_at, id`, movieID)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(&rating.Rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}

func (r *PostgresReviewRepository) list(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func scanReview(row scanner) (models.Review, error) {
	var (
		review models.Review
		rating int16
	)
	err := row.Scan(&review.ID, &review.UserID, &review.MovieID, &rating, &review.Comment, &review.UserName, &review.UserImage, &review.CreatedAt, &review.UpdatedAt)
	review.Rating = int(rating)
	return review, err
}

var _ ReviewRepository = (*PostgresReviewRepository)(nil)
