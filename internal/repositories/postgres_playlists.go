package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/moviewatch/backend/internal/db"
	"github.com/moviewatch/backend/internal/models"
)

// PostgresPlaylistRepository provides PostgreSQL-backed persistence for playlists.
type PostgresPlaylistRepository struct {
	pool db.Pool
}

// NewPostgresPlaylistRepository constructs a playlist repository backed by PostgreSQL.
func NewPostgresPlaylistRepository(pool db.Pool) *PostgresPlaylistRepository {
	return &PostgresPlaylistRepository{pool: pool}
}

// ListForUser returns the user's playlists with their entries and movies.
func (r *PostgresPlaylistRepository) ListForUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, user_id, name, created_at
        FROM playlists
        WHERE user_id = $1
        ORDER BY created_at, id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query playlists: %w", err)
	}

	playlists := make([]models.Playlist, 0)
	index := make(map[string]int)
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		p.Entries = make([]models.PlaylistEntry, 0)
		index[p.ID] = len(playlists)
		playlists = append(playlists, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	if len(playlists) == 0 {
		return playlists, nil
	}

	rows, err = conn.Query(ctx, `
        SELECT e.id, e.playlist_id, e.movie_id, e.created_at,
               m.id, m.name, m.release_date, m.director, m.description, m.video_file_path, m.banner_file_path
        FROM playlist_entries e
        JOIN playlists p ON p.id = e.playlist_id
        JOIN movies m ON m.id = e.movie_id
        WHERE p.user_id = $1
        ORDER BY e.created_at, e.id
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query playlist entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry models.PlaylistEntry
			movie models.Movie
		)
		if err := rows.Scan(
			&entry.ID, &entry.PlaylistID, &entry.MovieID, &entry.CreatedAt,
			&movie.ID, &movie.Name, &movie.ReleaseDate, &movie.Director, &movie.Description, &movie.VideoFilePath, &movie.BannerFilePath,
		); err != nil {
			return nil, fmt.Errorf("scan playlist entry: %w", err)
		}
		entry.Movie = &movie
		if i, ok := index[entry.PlaylistID]; ok {
			playlists[i].Entries = append(playlists[i].Entries, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist entries: %w", err)
	}

	return playlists, nil
}

// FindEntry returns a playlist entry together with the id of its owner.
func (r *PostgresPlaylistRepository) FindEntry(ctx context.Context, entryID string) (models.PlaylistEntry, string, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.PlaylistEntry{}, "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var (
		entry   models.PlaylistEntry
		ownerID string
	)
	err = conn.QueryRow(ctx, `
        SELECT e.id, e.playlist_id, e.movie_id, e.created_at, p.user_id
        FROM playlist_entries e
        JOIN playlists p ON p.id = e.playlist_id
        WHERE e.id = $1
    `, entryID).Scan(&entry.ID, &entry.PlaylistID, &entry.MovieID, &entry.CreatedAt, &ownerID)
	if err != nil {
		return models.PlaylistEntry{}, "", translate("select playlist entry", err)
	}
	return entry, ownerID, nil
}

// DeleteEntry removes a playlist entry by id.
func (r *PostgresPlaylistRepository) DeleteEntry(ctx context.Context, entryID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM playlist_entries WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("delete playlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddEntry adds the movie to the user's default playlist inside one transaction.
func (r *PostgresPlaylistRepository) AddEntry(ctx context.Context, userID, movieID string) (models.PlaylistEntry, bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.PlaylistEntry{}, false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return models.PlaylistEntry{}, false, fmt.Errorf("begin playlist transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	if _, err := tx.Exec(ctx, `
        INSERT INTO playlists (id, user_id, name, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, name) DO NOTHING
    `, uuid.NewString(), userID, models.DefaultPlaylistName, now); err != nil {
		return models.PlaylistEntry{}, false, translate("ensure default playlist", err)
	}

	var playlistID string
	if err := tx.QueryRow(ctx, `
        SELECT id FROM playlists WHERE user_id = $1 AND name = $2
    `, userID, models.DefaultPlaylistName).Scan(&playlistID); err != nil {
		return models.PlaylistEntry{}, false, translate("select default playlist", err)
	}

	var entry models.PlaylistEntry
	created := true
	err = tx.QueryRow(ctx, `
        INSERT INTO playlist_entries (id, playlist_id, movie_id, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (playlist_id, movie_id) DO NOTHING
        RETURNING id, playlist_id, movie_id, created_at
    `, uuid.NewString(), playlistID, movieID, now).Scan(&entry.ID, &entry.PlaylistID, &entry.MovieID, &entry.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		created = false
		err = tx.QueryRow(ctx, `
            SELECT id, playlist_id, movie_id, created_at
            FROM playlist_entries
            WHERE playlist_id = $1 AND movie_id = $2
        `, playlistID, movieID).Scan(&entry.ID, &entry.PlaylistID, &entry.MovieID, &entry.CreatedAt)
	}
	if err != nil {
		return models.PlaylistEntry{}, false, translate("insert playlist entry", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.PlaylistEntry{}, false, fmt.Errorf("commit playlist transaction: %w", err)
	}
	return entry, created, nil
}

var _ PlaylistRepository = (*PostgresPlaylistRepository)(nil)
