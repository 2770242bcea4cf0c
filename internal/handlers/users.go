package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/moviewatch/backend/internal/logging"
	"github.com/moviewatch/backend/internal/repositories"
)

// UserHandler implements profile reads and the about-text update.
type UserHandler struct {
	identity
}

type editAboutRequest struct {
	About string `json:"about"`
}

// GetByID handles GET /api/get-user-by-id/{userId}.
func (h UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.PathValue("userId")

	if h.Users == nil {
		logging.FromContext(ctx).Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgUserNotFound)
			return
		}
		logging.FromContext(ctx).Error("user lookup failed", "error", err, "userId", userID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, user)
}

// EditAbout handles PUT /api/edit-about-user/{userId}. Users may only edit their own profile.
func (h UserHandler) EditAbout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := r.PathValue("userId")

	if h.Users == nil {
		logger.Error("user store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}

	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var req editAboutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid about payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.About) == "" {
		respondError(ctx, w, http.StatusBadRequest, "Missing 'about' field")
		return
	}

	if userID != session.UserID {
		logger.Warn("about edit for another user", "sessionUserId", session.UserID, "userId", userID)
		respondError(ctx, w, http.StatusForbidden, msgForbidden)
		return
	}

	user, err := h.Users.UpdateAbout(ctx, userID, req.About)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, msgUserNotFound)
			return
		}
		logger.Error("update about failed", "error", err, "userId", userID)
		respondError(ctx, w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondJSON(ctx, w, http.StatusOK, user)
}
