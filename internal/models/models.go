package models

import "time"

// User represents an account within the moviewatch platform.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     *string   `json:"image"`
	About     *string   `json:"about"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Movie is a read-only catalog item.
type Movie struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ReleaseDate    time.Time `json:"releaseDate"`
	Director       string    `json:"director"`
	Description    string    `json:"description"`
	VideoFilePath  string    `json:"videoFilePath"`
	BannerFilePath string    `json:"bannerFilePath"`
}

// Review is one user's rating and comment for one movie. UserName and UserImage
// are a snapshot of the author taken when the review was first created.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	UserImage *string   `json:"userImage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Rating is the projection returned by the movie rating listing.
type Rating struct {
	Rating int `json:"rating"`
}

// WatchedMovie marks that a user has watched a movie.
type WatchedMovie struct {
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Playlist is a named collection of movies owned by a user.
type Playlist struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"createdAt"`
	Entries   []PlaylistEntry `json:"playlistEntries"`
}

// PlaylistEntry links a playlist to a movie.
type PlaylistEntry struct {
	ID         string    `json:"id"`
	PlaylistID string    `json:"playlistId"`
	MovieID    string    `json:"movieId"`
	CreatedAt  time.Time `json:"createdAt"`
	Movie      *Movie    `json:"movie,omitempty"`
}

// DefaultPlaylistName names the playlist created on a user's first playlist entry.
const DefaultPlaylistName = "Watchlist"

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)
