package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"keeply/backend/middleware"
	"keeply/backend/models"
	"keeply/backend/services"

	"github.com/gorilla/mux"
)

// streamable maps collection names to their snapshot loaders. Every event
// carries the full collection; clients replace local state wholesale.
var streamable = map[string]func(userID string) (interface{}, error){
	models.CollectionTasks: func(userID string) (interface{}, error) {
		return queryTasks(userID)
	},
	models.CollectionFolders: func(userID string) (interface{}, error) {
		return queryFolders(userID)
	},
	models.CollectionBooks: func(userID string) (interface{}, error) {
		return queryBooks(userID)
	},
	models.CollectionSchedules: func(userID string) (interface{}, error) {
		return querySchedules(userID)
	},
	models.CollectionExpenses: func(userID string) (interface{}, error) {
		return queryExpenses(userID)
	},
	models.CollectionCategories: func(userID string) (interface{}, error) {
		return queryCategories(userID)
	},
	models.CollectionDebts: func(userID string) (interface{}, error) {
		return queryDebtsForExport(userID)
	},
}

// StreamCollection serves a server-sent event stream of full collection
// snapshots. The first event is sent immediately; subsequent events follow
// each write to the collection until the client disconnects.
func StreamCollection(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	collection := mux.Vars(r)["collection"]
	load, ok := streamable[collection]
	if !ok {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := services.Hub.Subscribe(userID, collection)
	defer sub.Close()

	if err := writeSnapshotEvent(w, flusher, load, userID); err != nil {
		slog.Error("Error writing stream snapshot", "collection", collection, "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-sub.C:
			if err := writeSnapshotEvent(w, flusher, load, userID); err != nil {
				slog.Error("Error writing stream snapshot", "collection", collection, "error", err)
				return
			}
		}
	}
}

func writeSnapshotEvent(w http.ResponseWriter, flusher http.Flusher, load func(string) (interface{}, error), userID string) error {
	snapshot, err := load(userID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
