package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/repositories"
)

// PlaylistHandler implements playlist reads and entry management.
type PlaylistHandler struct {
	identity
	Playlists PlaylistStore
}

type createPlaylistEntryRequest struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
}

// ListForUser handles GET /api/get-user-playlist/{userId}. Any signed-in user
// may read another user's playlists.
func (h PlaylistHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := r.PathValue("userId")

	if h.Playlists == nil || h.Users == nil {
		logger.Error("playlist dependencies unavailable", "hasPlaylists", h.Playlists != nil, "hasUsers", h.Users != nil)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	if _, ok := h.session(w, r); !ok {
		return
	}

	if _, err := h.Users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.Error("playlist owner lookup failed", "error", err, "userId", userID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	playlists, err := h.Playlists.ListForUser(ctx, userID)
	if err != nil {
		logger.Error("list playlists failed", "error", err, "userId", userID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, playlists)
}

// CreateEntry handles POST /api/create-playlist-entry, adding a movie to the
// caller's default playlist.
func (h PlaylistHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Playlists == nil {
		logger.Error("playlist store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	var req createPlaylistEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid playlist entry payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.MovieID = strings.TrimSpace(req.MovieID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.MovieID == "" {
		respondError(ctx, w, http.StatusBadRequest, "Movie ID is required")
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if req.UserID != "" && req.UserID != user.ID {
		logger.Warn("playlist entry submitted for another user", "sessionUserId", user.ID, "userId", req.UserID)
		respondError(ctx, w, http.StatusForbidden, msgForbidden)
		return
	}

	entry, created, err := h.Playlists.AddEntry(ctx, user.ID, req.MovieID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgMovieNotFound)
			return
		}
		logger.Error("add playlist entry failed", "error", err, "userId", user.ID, "movieId", req.MovieID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(ctx, w, status, entry)
}

// DeleteEntry handles DELETE /api/delete-playlist-entry/{playlistEntryId}. Only
// the owner of the entry's playlist may delete it.
func (h PlaylistHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	entryID := r.PathValue("playlistEntryId")

	if h.Playlists == nil {
		logger.Error("playlist store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	_, ownerID, err := h.Playlists.FindEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, "Playlist entry not found")
			return
		}
		logger.Error("playlist entry lookup failed", "error", err, "entryId", entryID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	if ownerID != session.UserID {
		logger.Warn("playlist entry delete by non-owner", "sessionUserId", session.UserID, "ownerId", ownerID, "entryId", entryID)
		respondError(ctx, w, http.StatusForbidden, msgForbidden)
		return
	}

	if err := h.Playlists.DeleteEntry(ctx, entryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, "Playlist entry not found")
			return
		}
		logger.Error("delete playlist entry failed", "error", err, "entryId", entryID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondMessage(ctx, w, http.StatusOK, "Playlist entry deleted successfully")
}
