package handlers

import (
	"net/http"

	"github.com/moviewatch/backend/internal/auth"
)

// RegisterRoutes wires HTTP handlers into the provided ServeMux. Method
// mismatches are answered with 405 by the mux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	id := identity{Users: deps.Users, Sessions: deps.Sessions, Cookie: deps.Cookie}

	health := HealthHandler{}
	accounts := AuthHandler{identity: id, Limiter: deps.AuthLimiter}
	users := UserHandler{identity: id}
	movies := MovieHandler{Movies: deps.Movies}
	reviews := ReviewHandler{identity: id, Reviews: deps.Reviews}
	watched := WatchedHandler{identity: id, Watched: deps.Watched}
	playlists := PlaylistHandler{identity: id, Playlists: deps.Playlists}

	mux.HandleFunc("GET /healthz", health.Handle)

	mux.HandleFunc("POST /api/auth/signup", accounts.SignUp)
	mux.HandleFunc("POST /api/auth/login", accounts.Login)
	mux.HandleFunc("POST /api/auth/logout", accounts.Logout)
	mux.HandleFunc("GET /api/get-current-user", accounts.CurrentUser)

	mux.HandleFunc("GET /api/get-user-by-id/{userId}", users.GetByID)
	mux.HandleFunc("PUT /api/edit-about-user/{userId}", users.EditAbout)

	mux.HandleFunc("GET /api/get-movies", movies.List)
	mux.HandleFunc("GET /api/get-movie-by-id/{movieId}", movies.GetByID)

	mux.HandleFunc("POST /api/create-review", reviews.Create)
	mux.HandleFunc("GET /api/get-movie-reviews/{movieId}", reviews.ListByMovie)
	mux.HandleFunc("GET /api/get-user-reviews/{userId}", reviews.ListByUser)
	mux.HandleFunc("GET /api/get-movie-rating/{movieId}", reviews.Ratings)

	mux.HandleFunc("POST /api/create-watched-movie/{movieId}", watched.Create)
	mux.HandleFunc("DELETE /api/delete-watched-movie/{movieId}", watched.Delete)
	mux.HandleFunc("GET /api/get-watched-movie/{movieId}", watched.Get)

	mux.HandleFunc("GET /api/get-user-playlist/{userId}", playlists.ListForUser)
	mux.HandleFunc("POST /api/create-playlist-entry", playlists.CreateEntry)
	mux.HandleFunc("DELETE /api/delete-playlist-entry/{playlistEntryId}", playlists.DeleteEntry)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users       UserStore
	Movies      MovieStore
	Reviews     ReviewStore
	Watched     WatchedStore
	Playlists   PlaylistStore
	Sessions    SessionManager
	Cookie      auth.CookieConfig
	AuthLimiter RateLimiter
}
