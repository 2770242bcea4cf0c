package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/moviewatch/backend/internal/logging"
)

const (
	msgInternal      = "Internal Server Error"
	msgNoSession     = "No active session"
	msgForbidden     = "Forbidden"
	msgInvalidBody   = "Invalid request body"
	msgUserNotFound  = "User not found"
	msgMovieNotFound = "Movie not found"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"error": message})
}

func respondMessage(ctx context.Context, w http.ResponseWriter, status int, message string) {
	respondJSON(ctx, w, status, map[string]string{"message": message})
}
