package handlers

import (
	"errors"
	"net/http"

	"github.com/moviewatch/backend/internal/auth"
	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/models"
	"github.com/moviewatch/backend/internal/repositories"
)

// identity resolves the acting user from the session cookie. Handlers that need
// a signed-in caller embed it.
type identity struct {
	Users    UserStore
	Sessions SessionManager
	Cookie   auth.CookieConfig
}

// session returns the active session for r. On failure it writes the response
// and reports false.
func (id identity) session(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if id.Sessions == nil {
		logger.Error("session manager unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return auth.Session{}, false
	}

	session, err := id.Sessions.Resolve(ctx, id.Cookie.TokenFromRequest(r))
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) || errors.Is(err, auth.ErrSessionExpired) {
			respondError(ctx, w, http.StatusUnauthorized, msgNoSession)
			return auth.Session{}, false
		}
		logger.Error("resolve session failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return auth.Session{}, false
	}

	return session, true
}

// currentUser resolves the session and loads the user it belongs to by email.
// A session whose user no longer exists yields 404.
func (id identity) currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	session, ok := id.session(w, r)
	if !ok {
		return models.User{}, false
	}
	return id.sessionUser(w, r, session)
}

// sessionUser loads the user behind an already resolved session.
func (id identity) sessionUser(w http.ResponseWriter, r *http.Request, session auth.Session) (models.User, bool) {
	ctx := r.Context()
	if id.Users == nil {
		logging.FromContext(ctx).Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return models.User{}, false
	}

	user, err := id.Users.FindByEmail(ctx, session.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgUserNotFound)
			return models.User{}, false
		}
		logging.FromContext(ctx).Error("session user lookup failed", "error", err, "email", session.Email)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return models.User{}, false
	}

	return user, true
}
