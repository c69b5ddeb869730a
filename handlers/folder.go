package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"keeply/backend/database"
	"keeply/backend/middleware"
	"keeply/backend/models"
	"keeply/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetFolders returns the user's folders with their notes embedded, newest
// folder first.
func GetFolders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	folders, err := queryFolders(userID)
	if err != nil {
		slog.Error("Error querying folders", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(folders)
}

func queryFolders(userID string) ([]models.Folder, error) {
	rows, err := database.DB.Query(`
		SELECT id, title, description, createdAt
		FROM folders
		WHERE userId = ?
		ORDER BY createdAt DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var f models.Folder
		var description sql.NullString
		if err := rows.Scan(&f.ID, &f.Title, &description, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.Description = description.String
		f.UserID = userID
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range folders {
		notes, err := loadNotes(folders[i].ID)
		if err != nil {
			return nil, err
		}
		folders[i].Notes = notes
	}
	return folders, nil
}

func loadNotes(folderID string) ([]models.Note, error) {
	rows, err := database.DB.Query(`
		SELECT id, folderId, title, description, date
		FROM notes
		WHERE folderId = ?
		ORDER BY date DESC, id
	`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		var description sql.NullString
		if err := rows.Scan(&n.ID, &n.FolderID, &n.Title, &description, &n.Date); err != nil {
			return nil, err
		}
		n.Description = description.String
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func AddFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var f models.Folder
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if f.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now()
	f.UserID = userID
	f.Notes = []models.Note{}

	_, err := database.DB.Exec(`
		INSERT INTO folders (id, title, description, createdAt, userId)
		VALUES (?, ?, ?, ?, ?)
	`, f.ID, f.Title, f.Description, f.CreatedAt, f.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionFolders)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(f)
}

func UpdateFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var f models.Folder
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE folders SET title = ?, description = ? WHERE id = ? AND userId = ?
	`, f.Title, f.Description, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "folder not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionFolders)
	w.WriteHeader(http.StatusOK)
}

// DeleteFolder removes a folder and all of its notes.
func DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM folders WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "folder not found", http.StatusNotFound)
		return
	}

	if _, err := database.DB.Exec("DELETE FROM notes WHERE folderId = ?", id); err != nil {
		slog.Error("Error deleting folder notes", "folderId", id, "error", err)
	}

	services.Hub.Publish(userID, models.CollectionFolders)
	w.WriteHeader(http.StatusOK)
}

// folderOwned reports whether the folder exists and belongs to the user.
func folderOwned(folderID, userID string) (bool, error) {
	var count int
	err := database.DB.QueryRow(
		"SELECT COUNT(*) FROM folders WHERE id = ? AND userId = ?",
		folderID, userID,
	).Scan(&count)
	return count > 0, err
}

func AddNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	folderID := mux.Vars(r)["id"]

	owned, err := folderOwned(folderID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !owned {
		http.Error(w, "folder not found", http.StatusNotFound)
		return
	}

	var n models.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if n.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.FolderID = folderID
	if n.Date == "" {
		n.Date = time.Now().Format("2006-01-02")
	}

	_, err = database.DB.Exec(`
		INSERT INTO notes (id, folderId, title, description, date)
		VALUES (?, ?, ?, ?, ?)
	`, n.ID, n.FolderID, n.Title, n.Description, n.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionFolders)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(n)
}

func UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	folderID := vars["id"]
	noteID := vars["noteId"]

	owned, err := folderOwned(folderID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !owned {
		http.Error(w, "folder not found", http.StatusNotFound)
		return
	}

	var n models.Note
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE notes SET title = ?, description = ?, date = ?
		WHERE id = ? AND folderId = ?
	`, n.Title, n.Description, n.Date, noteID, folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionFolders)
	w.WriteHeader(http.StatusOK)
}

func DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)
	folderID := vars["id"]
	noteID := vars["noteId"]

	owned, err := folderOwned(folderID, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !owned {
		http.Error(w, "folder not found", http.StatusNotFound)
		return
	}

	result, err := database.DB.Exec("DELETE FROM notes WHERE id = ? AND folderId = ?", noteID, folderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "note not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionFolders)
	w.WriteHeader(http.StatusOK)
}
