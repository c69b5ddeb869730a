package handlers

import (
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

func GetSchedules(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	schedules, err := querySchedules(userID)
	if err != nil {
		slog.Error("Error querying schedules", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

func querySchedules(userID string) ([]models.Schedule, error) {
	rows, err := database.DB.Query(`
		SELECT id, subject, date, time, createdAt
		FROM schedules
		WHERE userId = ?
		ORDER BY date, time
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.Subject, &s.Date, &s.Time, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.UserID = userID
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func AddSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var s models.Schedule
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if s.Subject == "" {
		http.Error(w, "subject is required", http.StatusBadRequest)
		return
	}
	if !validScheduleDate(s.Date) {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !validScheduleTime(s.Time) {
		http.Error(w, "time must be HH:MM", http.StatusBadRequest)
		return
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now()
	s.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO schedules (id, subject, date, time, createdAt, userId)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.ID, s.Subject, s.Date, s.Time, s.CreatedAt, s.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionSchedules)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

func UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var s models.Schedule
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !validScheduleDate(s.Date) {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if !validScheduleTime(s.Time) {
		http.Error(w, "time must be HH:MM", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE schedules SET subject = ?, date = ?, time = ? WHERE id = ? AND userId = ?
	`, s.Subject, s.Date, s.Time, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "schedule not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionSchedules)
	w.WriteHeader(http.StatusOK)
}

func DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM schedules WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "schedule not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionSchedules)
	w.WriteHeader(http.StatusOK)
}

func validScheduleDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func validScheduleTime(t string) bool {
	_, err := time.Parse("15:04", t)
	return err == nil
}
