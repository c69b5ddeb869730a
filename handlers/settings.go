package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"keeply/backend/middleware"
	"keeply/backend/services"
)

type imageHostKeyRequest struct {
	APIKey string `json:"apiKey"`
}

type imageHostKeyStatus struct {
	Configured bool `json:"configured"`
}

// GetImageHostKeyStatus reports whether the user has a stored image host API
// key. The key itself is never returned.
func GetImageHostKeyStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	key, err := services.ImageHostKey(userID)
	if err != nil {
		slog.Error("Error loading image host key", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(imageHostKeyStatus{Configured: key != ""})
}

// SetImageHostKey stores the user's image host API key, encrypted at rest.
func SetImageHostKey(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req imageHostKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.APIKey == "" {
		http.Error(w, "apiKey is required", http.StatusBadRequest)
		return
	}

	if err := services.StoreImageHostKey(userID, req.APIKey); err != nil {
		slog.Error("Error storing image host key", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func DeleteImageHostKey(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := services.ClearImageHostKey(userID); err != nil {
		slog.Error("Error clearing image host key", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
