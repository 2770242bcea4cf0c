package handlers

import (
	"context"

	"github.com/moviewatch/backend/internal/auth"
	"github.com/moviewatch/backend/internal/models"
)

// UserStore captures the persistence operations required by the user and auth handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdateAbout(ctx context.Context, id, about string) (models.User, error)
}

// SessionManager issues, resolves and revokes cookie sessions.
type SessionManager interface {
	Issue(ctx context.Context, user models.User) (auth.Session, error)
	Resolve(ctx context.Context, token string) (auth.Session, error)
	Revoke(ctx context.Context, token string)
}

// MovieStore provides read access to the catalog.
type MovieStore interface {
	FindByID(ctx context.Context, id string) (models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
}

// ReviewStore captures operations required by the review handlers.
type ReviewStore interface {
	Upsert(ctx context.Context, review models.Review) (models.Review, bool, error)
	ListByMovie(ctx context.Context, movieID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	RatingsForMovie(ctx context.Context, movieID string) ([]models.Rating, error)
}

// WatchedStore captures operations required by the watched-movie handlers.
type WatchedStore interface {
	Create(ctx context.Context, watched models.WatchedMovie) (models.WatchedMovie, bool, error)
	Delete(ctx context.Context, userID, movieID string) (models.WatchedMovie, error)
	Exists(ctx context.Context, userID, movieID string) (bool, error)
}

// PlaylistStore captures operations required by the playlist handlers.
type PlaylistStore interface {
	ListForUser(ctx context.Context, userID string) ([]models.Playlist, error)
	FindEntry(ctx context.Context, entryID string) (models.PlaylistEntry, string, error)
	DeleteEntry(ctx context.Context, entryID string) error
	AddEntry(ctx context.Context, userID, movieID string) (models.PlaylistEntry, bool, error)
}
