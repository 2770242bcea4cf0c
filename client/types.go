package client

import "github.com/moviewatch/backend/internal/models"

// The API payload types, re-exported so callers outside this module can name them.
type (
	User          = models.User
	Movie         = models.Movie
	Review        = models.Review
	Rating        = models.Rating
	WatchedMovie  = models.WatchedMovie
	Playlist      = models.Playlist
	PlaylistEntry = models.PlaylistEntry
)
