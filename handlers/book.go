package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"keeply/backend/database"
	"keeply/backend/middleware"
	"keeply/backend/models"
	"keeply/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func GetBooks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	books, err := queryBooks(userID)
	if err != nil {
		slog.Error("Error querying books", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(books)
}

// SearchBooks matches titles by substring first, then by edit distance so
// near-miss queries still find their book.
func SearchBooks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q is required", http.StatusBadRequest)
		return
	}

	books, err := queryBooks(userID)
	if err != nil {
		slog.Error("Error querying books", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	matches := services.SearchBooks(books, query)
	if matches == nil {
		matches = []models.Book{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

func queryBooks(userID string) ([]models.Book, error) {
	rows, err := database.DB.Query(`
		SELECT id, title, description, coverUrl, rating, favorite
		FROM books
		WHERE userId = ?
		ORDER BY title
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var b models.Book
		var description, coverURL sql.NullString
		if err := rows.Scan(&b.ID, &b.Title, &description, &coverURL, &b.Rating, &b.Favorite); err != nil {
			return nil, err
		}
		b.Description = description.String
		b.CoverURL = coverURL.String
		b.UserID = userID
		books = append(books, b)
	}
	return books, rows.Err()
}

func AddBook(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var b models.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if b.Rating < 0 || b.Rating > 5 {
		http.Error(w, "rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO books (id, title, description, coverUrl, rating, favorite, userId)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Title, b.Description, b.CoverURL, b.Rating, b.Favorite, b.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionBooks)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func UpdateBook(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var b models.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if b.Rating < 0 || b.Rating > 5 {
		http.Error(w, "rating must be between 0 and 5", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE books
		SET title = ?, description = ?, coverUrl = ?, rating = ?, favorite = ?
		WHERE id = ? AND userId = ?
	`, b.Title, b.Description, b.CoverURL, b.Rating, b.Favorite, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionBooks)
	w.WriteHeader(http.StatusOK)
}

func ToggleBookFavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE books SET favorite = NOT favorite WHERE id = ? AND userId = ?
	`, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionBooks)
	w.WriteHeader(http.StatusOK)
}

func DeleteBook(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM books WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "book not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionBooks)
	w.WriteHeader(http.StatusOK)
}
