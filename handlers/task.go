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

func GetTasks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := queryTasks(userID)
	if err != nil {
		slog.Error("Error querying tasks", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

func queryTasks(userID string) ([]models.Task, error) {
	rows, err := database.DB.Query(`
		SELECT id, title, description, completed, deadline, createdAt, updatedAt
		FROM tasks
		WHERE userId = ?
		ORDER BY createdAt DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		var description sql.NullString
		var deadline sql.NullTime
		if err := rows.Scan(&t.ID, &t.Title, &description, &t.Completed, &deadline, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Description = description.String
		if deadline.Valid {
			d := deadline.Time
			t.Deadline = &d
		}
		t.UserID = userID
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func AddTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if t.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO tasks (id, title, description, completed, deadline, createdAt, updatedAt, userId)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Title, t.Description, t.Completed, t.Deadline, t.CreatedAt, t.UpdatedAt, t.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionTasks)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(t)
}

func UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var t models.Task
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, deadline = ?, updatedAt = ?
		WHERE id = ? AND userId = ?
	`, t.Title, t.Description, t.Completed, t.Deadline, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionTasks)
	w.WriteHeader(http.StatusOK)
}

// ToggleTask flips the completed flag. updatedAt moves with the toggle, which
// is what the streak calculation keys off.
func ToggleTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE tasks
		SET completed = NOT completed, updatedAt = ?
		WHERE id = ? AND userId = ?
	`, time.Now(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionTasks)
	w.WriteHeader(http.StatusOK)
}

func DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM tasks WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "task not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionTasks)
	w.WriteHeader(http.StatusOK)
}

// GetTaskStreak returns the number of consecutive days with at least one
// completed task, ending today.
func GetTaskStreak(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	rows, err := database.DB.Query(`
		SELECT id, completed, updatedAt
		FROM tasks
		WHERE userId = ? AND completed = 1
	`, userID)
	if err != nil {
		slog.Error("Error querying tasks for streak", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Completed, &t.UpdatedAt); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		tasks = append(tasks, t)
	}

	streak := services.CalculateStreak(tasks, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.StreakResponse{Streak: streak})
}
