package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keeply/backend/database"
	"keeply/backend/models"

	"github.com/gorilla/mux"
)

func TestAddFolderAndNote(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("POST", "/folders", models.Folder{Title: "School"})
	w := httptest.NewRecorder()
	AddFolder(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var folder models.Folder
	if err := json.NewDecoder(w.Body).Decode(&folder); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/folders/{id}/notes", AddNote).Methods("POST")

	req = NewAuthenticatedRequest("POST", "/folders/"+folder.ID+"/notes",
		models.Note{Title: "Homework", Description: "Chapter 3", Date: "2026-03-01"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	req = NewAuthenticatedRequest("GET", "/folders", nil)
	w = httptest.NewRecorder()
	GetFolders(w, req)

	var folders []models.Folder
	if err := json.NewDecoder(w.Body).Decode(&folders); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("Expected 1 folder, got %d", len(folders))
	}
	if len(folders[0].Notes) != 1 || folders[0].Notes[0].Title != "Homework" {
		t.Errorf("Expected the note embedded in the folder, got %+v", folders[0].Notes)
	}
}

func TestAddNoteToForeignFolder(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	_, err := database.DB.Exec(`
		INSERT INTO folders (id, title, createdAt, userId)
		VALUES (?, ?, ?, ?)
	`, "foreign-folder", "Not yours", time.Now(), "other-user")
	if err != nil {
		t.Fatal(err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/folders/{id}/notes", AddNote).Methods("POST")

	req := NewAuthenticatedRequest("POST", "/folders/foreign-folder/notes", models.Note{Title: "Sneaky"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for foreign folder, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDeleteFolderRemovesNotes(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	_, err := database.DB.Exec(`
		INSERT INTO folders (id, title, createdAt, userId) VALUES (?, ?, ?, ?)
	`, "folder-1", "To delete", time.Now(), TestUserID)
	if err != nil {
		t.Fatal(err)
	}
	_, err = database.DB.Exec(`
		INSERT INTO notes (id, folderId, title, date) VALUES (?, ?, ?, ?)
	`, "note-1", "folder-1", "Orphan candidate", "2026-03-01")
	if err != nil {
		t.Fatal(err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/folders/{id}", DeleteFolder).Methods("DELETE")

	req := NewAuthenticatedRequest("DELETE", "/folders/folder-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var count int
	if err := database.DB.QueryRow("SELECT COUNT(*) FROM notes WHERE folderId = ?", "folder-1").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected notes to be deleted with the folder, %d remain", count)
	}
}

func TestUpdateNote(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	_, err := database.DB.Exec(`
		INSERT INTO folders (id, title, createdAt, userId) VALUES (?, ?, ?, ?)
	`, "folder-1", "Notes", time.Now(), TestUserID)
	if err != nil {
		t.Fatal(err)
	}
	_, err = database.DB.Exec(`
		INSERT INTO notes (id, folderId, title, date) VALUES (?, ?, ?, ?)
	`, "note-1", "folder-1", "Draft", "2026-03-01")
	if err != nil {
		t.Fatal(err)
	}

	r := mux.NewRouter()
	r.HandleFunc("/folders/{id}/notes/{noteId}", UpdateNote).Methods("PUT")

	req := NewAuthenticatedRequest("PUT", "/folders/folder-1/notes/note-1",
		models.Note{Title: "Final", Date: "2026-03-02"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var title string
	if err := database.DB.QueryRow("SELECT title FROM notes WHERE id = ?", "note-1").Scan(&title); err != nil {
		t.Fatal(err)
	}
	if title != "Final" {
		t.Errorf("Expected updated title 'Final', got '%s'", title)
	}
}
