package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moviewatch/backend/internal/auth"
	"github.com/moviewatch/backend/internal/handlers"
	"github.com/moviewatch/backend/internal/memstore"
	"github.com/moviewatch/backend/internal/middleware"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memstore.New()
	store.PutMovie(Movie{ID: "m1", Name: "The Long Take", ReleaseDate: time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC)})
	store.PutMovie(Movie{ID: "m2", Name: "Paper Satellites", ReleaseDate: time.Date(2021, 9, 2, 0, 0, 0, 0, time.UTC)})

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Dependencies{
		Users:     store.Users(),
		Movies:    store.Movies(),
		Reviews:   store.Reviews(),
		Watched:   store.Watched(),
		Playlists: store.Playlists(),
		Sessions:  auth.NewManager(time.Hour, auth.NewInMemorySessionStore()),
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	srv := httptest.NewServer(middleware.RequestLogger(logger)(mux))
	t.Cleanup(srv.Close)
	return srv
}

func newSignedInClient(t *testing.T, srv *httptest.Server, email, name string) (*Client, User) {
	t.Helper()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	user, err := c.SignUp(context.Background(), SignUpInput{Email: email, Name: name, Password: "correct-horse"})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return c, user
}

func rating(v int) *int { return &v }

func TestClientReviewScenario(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c, user := newSignedInClient(t, srv, "ana@example.com", "Ana")

	review, created, err := c.CreateReview(ctx, ReviewInput{UserID: user.ID, MovieID: "m1", Rating: rating(4), Comment: "Great"})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
	if !created || review.Rating != 4 {
		t.Fatalf("expected created review with rating 4 got created=%v %+v", created, review)
	}

	review, created, err = c.CreateReview(ctx, ReviewInput{UserID: user.ID, MovieID: "m1", Rating: rating(2), Comment: "Changed mind"})
	if err != nil {
		t.Fatalf("update review: %v", err)
	}
	if created || review.Rating != 2 {
		t.Fatalf("expected updated review with rating 2 got created=%v %+v", created, review)
	}

	reviews, err := c.MovieReviews(ctx, "m1")
	if err != nil {
		t.Fatalf("movie reviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 2 {
		t.Fatalf("expected one review with rating 2 got %+v", reviews)
	}

	ratings, err := c.MovieRatings(ctx, "m1")
	if err != nil {
		t.Fatalf("movie ratings: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Rating != 2 {
		t.Fatalf("unexpected ratings %+v", ratings)
	}

	mine, err := c.UserReviews(ctx, user.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one user review got %d (%v)", len(mine), err)
	}

	_, _, err = c.CreateReview(ctx, ReviewInput{UserID: user.ID, MovieID: "m1", Comment: "No stars"})
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("expected 400 got %v", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Rating must be between 1 and 5" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientWatchedAndPlaylist(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c, user := newSignedInClient(t, srv, "ana@example.com", "Ana")

	watched, err := c.IsWatched(ctx, "m1")
	if err != nil || watched {
		t.Fatalf("expected unwatched got %v (%v)", watched, err)
	}

	if _, created, err := c.MarkWatched(ctx, "m1"); err != nil || !created {
		t.Fatalf("expected marker created got %v (%v)", created, err)
	}
	if _, created, err := c.MarkWatched(ctx, "m1"); err != nil || created {
		t.Fatalf("expected idempotent mark got %v (%v)", created, err)
	}
	if watched, err := c.IsWatched(ctx, "m1"); err != nil || !watched {
		t.Fatalf("expected watched got %v (%v)", watched, err)
	}
	if _, err := c.UnmarkWatched(ctx, "m1"); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	if _, err := c.UnmarkWatched(ctx, "m1"); !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 got %v", err)
	}

	entry, created, err := c.AddToPlaylist(ctx, user.ID, "m2")
	if err != nil || !created {
		t.Fatalf("add to playlist: created=%v err=%v", created, err)
	}

	playlists, err := c.UserPlaylists(ctx, user.ID)
	if err != nil {
		t.Fatalf("user playlists: %v", err)
	}
	if len(playlists) != 1 || len(playlists[0].Entries) != 1 || playlists[0].Entries[0].Movie.Name != "Paper Satellites" {
		t.Fatalf("unexpected playlists %+v", playlists)
	}

	if err := c.DeletePlaylistEntry(ctx, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := c.DeletePlaylistEntry(ctx, entry.ID); !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 got %v", err)
	}
}

func TestClientProfileAndSessions(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	ana, anaUser := newSignedInClient(t, srv, "ana@example.com", "Ana")
	ben, _ := newSignedInClient(t, srv, "ben@example.com", "Ben")

	if _, err := ben.EditAbout(ctx, anaUser.ID, "hijacked"); !IsStatus(err, http.StatusForbidden) {
		t.Fatalf("expected 403 got %v", err)
	}

	updated, err := ana.EditAbout(ctx, anaUser.ID, "Film nerd")
	if err != nil {
		t.Fatalf("edit about: %v", err)
	}
	if updated.About == nil || *updated.About != "Film nerd" {
		t.Fatalf("unexpected about %+v", updated.About)
	}

	profile, err := ben.User(ctx, anaUser.ID)
	if err != nil || profile.Name != "Ana" {
		t.Fatalf("unexpected profile %+v (%v)", profile, err)
	}

	me, err := ana.CurrentUser(ctx)
	if err != nil || me.ID != anaUser.ID {
		t.Fatalf("unexpected current user %+v (%v)", me, err)
	}

	if err := ana.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := ana.CurrentUser(ctx); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 after logout got %v", err)
	}

	if _, err := ana.Login(ctx, "ana@example.com", "correct-horse"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := ana.Login(ctx, "ana@example.com", "wrong"); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 got %v", err)
	}
	if _, err := ana.SignUp(ctx, SignUpInput{Email: "ana@example.com", Name: "Ana", Password: "correct-horse"}); !IsStatus(err, http.StatusConflict) {
		t.Fatalf("expected 409 got %v", err)
	}
}

func TestClientCatalog(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	movies, err := c.Movies(ctx)
	if err != nil || len(movies) != 2 {
		t.Fatalf("expected 2 movies got %d (%v)", len(movies), err)
	}

	movie, err := c.Movie(ctx, "m1")
	if err != nil || movie.Name != "The Long Take" {
		t.Fatalf("unexpected movie %+v (%v)", movie, err)
	}

	if _, err := c.Movie(ctx, "nope"); !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 got %v", err)
	}
	if _, _, err := c.MarkWatched(ctx, "m1"); !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 without session got %v", err)
	}
}

func TestNewRejectsRelativeURL(t *testing.T) {
	if _, err := New("localhost:8080/api"); err == nil {
		t.Fatal("expected error for relative base url")
	}
}
