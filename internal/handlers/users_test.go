package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/moviewatch/backend/internal/models"
)

func TestUserHandlerGetByID(t *testing.T) {
	env := newTestEnv(t)
	env.store.PutUser(models.User{ID: "u1", Name: "Ana", Email: "u1@example.com", Password: "hash"})

	rec := env.do(t, http.MethodGet, "/api/get-user-by-id/u1", nil, nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
	if got := decodeBody[models.User](t, rec); got.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", got)
	}

	rec = env.do(t, http.MethodGet, "/api/get-user-by-id/nobody", nil, nil)
	expectError(t, rec, http.StatusNotFound, msgUserNotFound)
}

func TestUserHandlerEditAbout(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.addUser(t, "u1", "Ana")
	_, other := env.addUser(t, "u2", "Ben")

	rec := env.do(t, http.MethodPut, "/api/edit-about-user/u1", editAboutRequest{About: "Film nerd"}, nil)
	expectError(t, rec, http.StatusUnauthorized, msgNoSession)

	rec = env.do(t, http.MethodPut, "/api/edit-about-user/u1", editAboutRequest{About: "  "}, cookie)
	expectError(t, rec, http.StatusBadRequest, "Missing 'about' field")

	rec = env.do(t, http.MethodPut, "/api/edit-about-user/u1", editAboutRequest{About: "Hijacked"}, other)
	expectError(t, rec, http.StatusForbidden, msgForbidden)

	rec = env.do(t, http.MethodPut, "/api/edit-about-user/u1", editAboutRequest{About: "Film nerd"}, cookie)
	expectStatus(t, rec, http.StatusOK)
	updated := decodeBody[models.User](t, rec)
	if updated.About == nil || *updated.About != "Film nerd" {
		t.Fatalf("unexpected about: %+v", updated.About)
	}

	ghost := models.User{ID: "ghost", Email: "ghost@example.com"}
	rec = env.do(t, http.MethodPut, "/api/edit-about-user/ghost", editAboutRequest{About: "Boo"}, env.cookieFor(t, ghost))
	expectError(t, rec, http.StatusNotFound, msgUserNotFound)

	rec = env.do(t, http.MethodPost, "/api/edit-about-user/u1", editAboutRequest{About: "Film nerd"}, cookie)
	expectStatus(t, rec, http.StatusMethodNotAllowed)
}
