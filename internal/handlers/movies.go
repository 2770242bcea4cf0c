package handlers

import (
	"errors"
	"net/http"

	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/repositories"
)

// MovieHandler serves the read-only catalog.
type MovieHandler struct {
	Movies MovieStore
}

// GetByID handles GET /api/get-movie-by-id/{movieId}.
func (h MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := r.PathValue("movieId")

	if h.Movies == nil {
		logging.FromContext(ctx).Error("movie store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	movie, err := h.Movies.FindByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgMovieNotFound)
			return
		}
		logging.FromContext(ctx).Error("movie lookup failed", "error", err, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, movie)
}

// List handles GET /api/get-movies.
func (h MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Movies == nil {
		logging.FromContext(ctx).Error("movie store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	movies, err := h.Movies.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list movies failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, movies)
}
