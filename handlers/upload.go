package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"keeply/backend/config"
	"keeply/backend/middleware"
	"keeply/backend/services"
)

// ImageHost holds the relay settings, assigned at startup.
var ImageHost config.ImageHostConfig

const maxUploadSize = 10 << 20 // 10 MiB

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage relays a multipart image to the configured image host and
// returns the public URL. The user's stored API key takes precedence over
// the server-wide one.
func UploadImage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "image too large or malformed form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	apiKey, err := services.ImageHostKey(userID)
	if err != nil {
		slog.Error("Error loading image host key", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if apiKey == "" {
		apiKey = ImageHost.APIKey
	}
	if apiKey == "" {
		http.Error(w, "no image host API key configured", http.StatusPreconditionFailed)
		return
	}

	url, err := services.UploadImage(r.Context(), ImageHost.Endpoint, apiKey, header.Filename, file)
	if err != nil {
		slog.Error("Image upload failed", "error", err)
		http.Error(w, "image upload failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(uploadResponse{URL: url})
}
