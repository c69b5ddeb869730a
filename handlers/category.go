package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"

	"keeply/backend/database"
	"keeply/backend/middleware"
	"keeply/backend/models"
	"keeply/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// defaultCategories is seeded for users who have none yet, so the ledger
// screens are usable from the first launch.
var defaultCategories = []models.Category{
	{Name: "Food", Color: "#FF6B6B", Icon: "fast-food"},
	{Name: "Transport", Color: "#4ECDC4", Icon: "bus"},
	{Name: "Bills", Color: "#45B7D1", Icon: "receipt"},
	{Name: "Shopping", Color: "#96CEB4", Icon: "cart"},
	{Name: "Other", Color: "#9B59B6", Icon: "ellipsis-horizontal"},
}

func GetCategories(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := queryCategories(userID)
	if err != nil {
		slog.Error("Error querying categories", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(categories) == 0 {
		categories, err = seedDefaultCategories(userID)
		if err != nil {
			slog.Error("Error seeding default categories", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

func queryCategories(userID string) ([]models.Category, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, color, icon, budget
		FROM categories
		WHERE userId = ?
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var color, icon sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &color, &icon, &c.Budget); err != nil {
			return nil, err
		}
		c.Color = color.String
		c.Icon = icon.String
		c.UserID = userID
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func seedDefaultCategories(userID string) ([]models.Category, error) {
	seeded := make([]models.Category, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		c.ID = uuid.NewString()
		c.UserID = userID
		_, err := database.DB.Exec(`
			INSERT INTO categories (id, name, color, icon, budget, userId)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Color, c.Icon, c.Budget, c.UserID)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, c)
	}
	return seeded, nil
}

func AddCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if c.Budget < 0 {
		http.Error(w, "budget must not be negative", http.StatusBadRequest)
		return
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Color == "" {
		c.Color = generateRandomColor()
	}
	c.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO categories (id, name, color, icon, budget, userId)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Color, c.Icon, c.Budget, c.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionCategories)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if c.Budget < 0 {
		http.Error(w, "budget must not be negative", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE categories
		SET name = ?, color = ?, icon = ?, budget = ?
		WHERE id = ? AND userId = ?
	`, c.Name, c.Color, c.Icon, c.Budget, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionCategories)
	w.WriteHeader(http.StatusOK)
}

func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM categories WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionCategories)
	w.WriteHeader(http.StatusOK)
}

func generateRandomColor() string {
	colors := []string{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
		"#D4A5A5", "#9B59B6", "#3498DB", "#1ABC9C", "#F1C40F",
	}
	return colors[rand.Intn(len(colors))]
}
