package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/models"
	"github.com/moviewatch/backend/internal/repositories"
)

// ReviewHandler implements review submission and the review and rating listings.
type ReviewHandler struct {
	identity
	Reviews ReviewStore
}

type createReviewRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

// Create handles POST /api/create-review. A second submission for the same
// (user, movie) pair updates the existing review in place.
func (h ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Reviews == nil {
		logger.Error("review store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid review payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.MovieID = strings.TrimSpace(req.MovieID)
	req.UserID = strings.TrimSpace(req.UserID)
	req.Comment = strings.TrimSpace(req.Comment)

	switch {
	case req.MovieID == "":
		respondError(ctx, w, http.StatusBadRequest, "Movie ID is required")
		return
	case req.UserID == "":
		respondError(ctx, w, http.StatusBadRequest, "User ID is required")
		return
	case req.Rating == nil || *req.Rating < models.MinRating || *req.Rating > models.MaxRating:
		respondError(ctx, w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	case req.Comment == "":
		respondError(ctx, w, http.StatusBadRequest, "Comment is required")
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}
	if req.UserID != session.UserID {
		logger.Warn("review submitted for another user", "sessionUserId", session.UserID, "userId", req.UserID)
		respondError(ctx, w, http.StatusForbidden, msgForbidden)
		return
	}

	user, ok := h.sessionUser(w, r, session)
	if !ok {
		return
	}

	ctx, span := logging.StartSpan(ctx, "reviews.upsert", "userId", user.ID, "movieId", req.MovieID)
	review, created, err := h.Reviews.Upsert(ctx, models.Review{
		UserID:    user.ID,
		MovieID:   req.MovieID,
		Rating:    *req.Rating,
		Comment:   req.Comment,
		UserName:  user.Name,
		UserImage: user.Image,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			span.End(nil)
			respondError(ctx, w, http.StatusNotFound, msgMovieNotFound)
			return
		}
		span.End(err)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	span.End(nil)

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(ctx, w, status, review)
}

// ListByMovie handles GET /api/get-movie-reviews/{movieId}.
func (h ReviewHandler) ListByMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := r.PathValue("movieId")

	if h.Reviews == nil {
		logging.FromContext(ctx).Error("review store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	reviews, err := h.Reviews.ListByMovie(ctx, movieID)
	if err != nil {
		logging.FromContext(ctx).Error("list movie reviews failed", "error", err, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, reviews)
}

// ListByUser handles GET /api/get-user-reviews/{userId}.
func (h ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userId")

	if h.Reviews == nil {
		logging.FromContext(ctx).Error("review store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	reviews, err := h.Reviews.ListByUser(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("list user reviews failed", "error", err, "userId", userID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, reviews)
}

// Ratings handles GET /api/get-movie-rating/{movieId}.
func (h ReviewHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	movieID := r.PathValue("movieId")

	if h.Reviews == nil {
		logging.FromContext(ctx).Error("review store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	ratings, err := h.Reviews.RatingsForMovie(ctx, movieID)
	if err != nil {
		logging.FromContext(ctx).Error("list movie ratings failed", "error", err, "movieId", movieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, ratings)
}
