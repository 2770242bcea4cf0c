package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moviewatch/backend/internal/auth"
	"github.com/moviewatch/backend/internal/memstore"
	"github.com/moviewatch/backend/internal/models"
)

type testEnv struct {
	store        *memstore.Store
	sessionStore *auth.InMemorySessionStore
	sessions     *auth.Manager
	mux          *http.ServeMux
}

type denyLimiter struct{}

func (denyLimiter) Allow(string) bool { return false }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLimiter(t, nil)
}

func newTestEnvWithLimiter(t *testing.T, limiter RateLimiter) *testEnv {
	t.Helper()

	store := memstore.New()
	store.PutMovie(models.Movie{ID: "m1", Name: "The Long Take", ReleaseDate: time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC)})
	store.PutMovie(models.Movie{ID: "m2", Name: "Paper Satellites", ReleaseDate: time.Date(2021, 9, 2, 0, 0, 0, 0, time.UTC)})

	sessionStore := auth.NewInMemorySessionStore()
	sessions := auth.NewManager(time.Hour, sessionStore)

	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Users:       store.Users(),
		Movies:      store.Movies(),
		Reviews:     store.Reviews(),
		Watched:     store.Watched(),
		Playlists:   store.Playlists(),
		Sessions:    sessions,
		AuthLimiter: limiter,
	})

	return &testEnv{store: store, sessionStore: sessionStore, sessions: sessions, mux: mux}
}

// addUser stores a user and returns a cookie for a fresh session.
func (e *testEnv) addUser(t *testing.T, id, name string) (models.User, *http.Cookie) {
	t.Helper()
	user := models.User{ID: id, Name: name, Email: id + "@example.com"}
	e.store.PutUser(user)
	return user, e.cookieFor(t, user)
}

func (e *testEnv) cookieFor(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	session, err := e.sessions.Issue(context.Background(), user)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}
	return &http.Cookie{Name: auth.DefaultCookieName, Value: session.Token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	expectStatus(t, rec, status)
	body := decodeBody[map[string]string](t, rec)
	if body["error"] != message {
		t.Fatalf("expected error %q got %q", message, body["error"])
	}
}

func intPtr(v int) *int { return &v }
