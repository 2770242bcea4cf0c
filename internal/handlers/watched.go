package handlers

import (
	"errors"
	"net/http"

	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/models"
	"github.com/moviewatch/backend/internal/repositories"
)

// WatchedHandler implements the watched-movie marker endpoints for the signed-in user.
type WatchedHandler struct {
	identity
	Watched WatchedStore
}

// Create handles POST /api/create-watched-movie/{movieId}. Marking a movie twice
// is reported with 200 and leaves the existing marker untouched.
func (h WatchedHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	movieID := r.PathValue("movieId")

	if h.Watched == nil {
		logger.Error("watched store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	watched, created, err := h.Watched.Create(ctx, models.WatchedMovie{UserID: user.ID, MovieID: movieID})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgMovieNotFound)
			return
		}
		logger.Error("mark movie watched failed", "error", err, "userId", user.ID, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	if !created {
		respondMessage(ctx, w, http.StatusOK, "Already marked as watched")
		return
	}
	respondJSON(ctx, w, http.StatusCreated, watched)
}

// Delete handles DELETE /api/delete-watched-movie/{movieId}.
func (h WatchedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	movieID := r.PathValue("movieId")

	if h.Watched == nil {
		logger.Error("watched store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	removed, err := h.Watched.Delete(ctx, user.ID, movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, "Watched movie entry not found")
			return
		}
		logger.Error("unmark movie watched failed", "error", err, "userId", user.ID, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, removed)
}

// Get handles GET /api/get-watched-movie/{movieId} and answers with a bare boolean.
func (h WatchedHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	movieID := r.PathValue("movieId")

	if h.Watched == nil {
		logger.Error("watched store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	watched, err := h.Watched.Exists(ctx, user.ID, movieID)
	if err != nil {
		logger.Error("lookup watched marker failed", "error", err, "userId", user.ID, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, watched)
}
