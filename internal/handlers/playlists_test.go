package handlers

import (
	"net/http"
	"testing"

	"github.com/moviewatch/backend/internal/models"
)

func TestPlaylistEntryLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.addUser(t, "u1", "Ana")

	rec := env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1", MovieID: "m1"}, cookie)
	expectStatus(t, rec, http.StatusCreated)
	entry := decodeBody[models.PlaylistEntry](t, rec)

	rec = env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1", MovieID: "m1"}, cookie)
	expectStatus(t, rec, http.StatusOK)
	if again := decodeBody[models.PlaylistEntry](t, rec); again.ID != entry.ID {
		t.Fatalf("expected existing entry %s got %s", entry.ID, again.ID)
	}

	rec = env.do(t, http.MethodGet, "/api/get-user-playlist/u1", nil, cookie)
	expectStatus(t, rec, http.StatusOK)
	playlists := decodeBody[[]models.Playlist](t, rec)
	if len(playlists) != 1 || playlists[0].Name != models.DefaultPlaylistName {
		t.Fatalf("unexpected playlists: %+v", playlists)
	}
	if len(playlists[0].Entries) != 1 || playlists[0].Entries[0].Movie == nil || playlists[0].Entries[0].Movie.ID != "m1" {
		t.Fatalf("expected entry with movie m1 got %+v", playlists[0].Entries)
	}

	rec = env.do(t, http.MethodDelete, "/api/delete-playlist-entry/"+entry.ID, nil, cookie)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeBody[map[string]string](t, rec); got["message"] != "Playlist entry deleted successfully" {
		t.Fatalf("unexpected body: %v", got)
	}

	rec = env.do(t, http.MethodDelete, "/api/delete-playlist-entry/"+entry.ID, nil, cookie)
	expectError(t, rec, http.StatusNotFound, "Playlist entry not found")

	rec = env.do(t, http.MethodGet, "/api/get-user-playlist/u1", nil, cookie)
	expectStatus(t, rec, http.StatusOK)
	playlists = decodeBody[[]models.Playlist](t, rec)
	if len(playlists) != 1 || len(playlists[0].Entries) != 0 {
		t.Fatalf("expected empty playlist got %+v", playlists)
	}
}

func TestPlaylistOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.addUser(t, "u1", "Ana")
	_, intruder := env.addUser(t, "u2", "Ben")

	rec := env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1", MovieID: "m1"}, owner)
	expectStatus(t, rec, http.StatusCreated)
	entry := decodeBody[models.PlaylistEntry](t, rec)

	rec = env.do(t, http.MethodDelete, "/api/delete-playlist-entry/"+entry.ID, nil, intruder)
	expectError(t, rec, http.StatusForbidden, msgForbidden)

	rec = env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1", MovieID: "m2"}, intruder)
	expectError(t, rec, http.StatusForbidden, msgForbidden)

	rec = env.do(t, http.MethodGet, "/api/get-user-playlist/u1", nil, intruder)
	expectStatus(t, rec, http.StatusOK)
	playlists := decodeBody[[]models.Playlist](t, rec)
	if len(playlists) != 1 || len(playlists[0].Entries) != 1 {
		t.Fatalf("expected owner's entry to survive got %+v", playlists)
	}
}

func TestPlaylistErrors(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.addUser(t, "u1", "Ana")

	rec := env.do(t, http.MethodGet, "/api/get-user-playlist/u1", nil, nil)
	expectError(t, rec, http.StatusUnauthorized, msgNoSession)

	rec = env.do(t, http.MethodGet, "/api/get-user-playlist/nobody", nil, cookie)
	expectError(t, rec, http.StatusNotFound, msgUserNotFound)

	rec = env.do(t, http.MethodGet, "/api/get-user-playlist/u1", nil, cookie)
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array got %q", got)
	}

	rec = env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1"}, cookie)
	expectError(t, rec, http.StatusBadRequest, "Movie ID is required")

	rec = env.do(t, http.MethodPost, "/api/create-playlist-entry", createPlaylistEntryRequest{UserID: "u1", MovieID: "missing"}, cookie)
	expectError(t, rec, http.StatusNotFound, msgMovieNotFound)

	rec = env.do(t, http.MethodDelete, "/api/delete-playlist-entry/nope", nil, nil)
	expectError(t, rec, http.StatusUnauthorized, msgNoSession)
}
