package repositories

import (
	"context"

	"github.com/moviewatch/backend/internal/models"
)

// UserRepository defines the data access contract for users.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateAbout(ctx context.Context, id, about string) (models.User, error)
}

// MovieRepository defines read access to the movie catalog.
type MovieRepository interface {
	FindByID(ctx context.Context, id string) (models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
}

// ReviewRepository defines data access for reviews.
type ReviewRepository interface {
	// Upsert inserts review or, when the (user, movie) pair already has one,
	// updates its rating and comment. The flag reports whether a row was created.
	Upsert(ctx context.Context, review models.Review) (models.Review, bool, error)
	ListByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	RatingsForMovie(ctx context.Context, movieID string) ([]models.Rating, error)
}

// WatchedRepository defines data access for watched-movie markers.
type WatchedRepository interface {
	// Create marks the movie watched. The flag is false when the marker already existed.
	Create(ctx context.Context, watched models.WatchedMovie) (models.WatchedMovie, bool, error)
	Delete(ctx context.Context, userID, movieID string) (models.WatchedMovie, error)
	Exists(ctx context.Context, userID, movieID string) (bool, error)
}

// PlaylistRepository defines data access for playlists and their entries.
type PlaylistRepository interface {
	ListForUser(ctx context.Context, userID string) ([]models.Playlist, error)
	// FindEntry returns the entry and the id of the user owning its playlist.
	FindEntry(ctx context.Context, entryID string) (models.PlaylistEntry, string, error)
	DeleteEntry(ctx context.Context, entryID string) error
	// AddEntry adds movieID to the user's default playlist, creating the playlist
	// on demand. The flag is false when the movie was already in it.
	AddEntry(ctx context.Context, userID, movieID string) (models.PlaylistEntry, bool, error)
}
