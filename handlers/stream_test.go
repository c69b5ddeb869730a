package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"keeply/backend/database"
	"keeply/backend/models"

	"github.com/gorilla/mux"
)

func streamRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/stream/{collection}", StreamCollection).Methods("GET")
	return r
}

func TestStreamUnknownCollection(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("GET", "/stream/nonsense", nil)
	w := httptest.NewRecorder()
	streamRouter().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestStreamSendsInitialSnapshot(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	ts := time.Now()
	_, err := database.DB.Exec(`
		INSERT INTO tasks (id, title, completed, createdAt, updatedAt, userId)
		VALUES (?, ?, ?, ?, ?, ?)
	`, "task-1", "Streamed task", false, ts, ts, TestUserID)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // handler exits right after the first snapshot

	req := httptest.NewRequest("GET", "/stream/"+models.CollectionTasks, nil).WithContext(ctx)
	req = SetupTestAuth(req)
	w := httptest.NewRecorder()
	streamRouter().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event: snapshot") {
		t.Errorf("Expected a snapshot event, got:\n%s", body)
	}
	if !strings.Contains(body, "Streamed task") {
		t.Errorf("Expected the task in the snapshot payload, got:\n%s", body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %s", ct)
	}
}
