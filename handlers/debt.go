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

func GetDebts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := `
		SELECT id, personName, amount, description, type, status, date, settledDate
		FROM debts
		WHERE userId = ?
	`
	args := []interface{}{userID}

	if status := r.URL.Query().Get("status"); status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if debtType := r.URL.Query().Get("type"); debtType != "" {
		query += " AND type = ?"
		args = append(args, debtType)
	}
	query += " ORDER BY date DESC"

	rows, err := database.DB.Query(query, args...)
	if err != nil {
		slog.Error("Error querying debts", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		var d models.Debt
		var description sql.NullString
		var settledDate sql.NullTime
		if err := rows.Scan(&d.ID, &d.PersonName, &d.Amount, &description, &d.Type, &d.Status, &d.Date, &settledDate); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		d.Description = description.String
		if settledDate.Valid {
			t := settledDate.Time
			d.SettledDate = &t
		}
		d.UserID = userID
		debts = append(debts, d)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(debts)
}

func AddDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.PersonName == "" {
		http.Error(w, "personName is required", http.StatusBadRequest)
		return
	}
	if d.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if d.Type != models.DebtOwedToMe && d.Type != models.DebtIOwe {
		http.Error(w, "type must be owed_to_me or i_owe", http.StatusBadRequest)
		return
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	// New debts always start active
	d.Status = models.DebtActive
	d.SettledDate = nil
	d.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO debts (id, personName, amount, description, type, status, date, settledDate, userId)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.PersonName, d.Amount, d.Description, d.Type, d.Status, d.Date, d.SettledDate, d.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionDebts)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

func UpdateDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var d models.Debt
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if d.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if d.Type != models.DebtOwedToMe && d.Type != models.DebtIOwe {
		http.Error(w, "type must be owed_to_me or i_owe", http.StatusBadRequest)
		return
	}

	// Status transitions go through the settle endpoint only
	result, err := database.DB.Exec(`
		UPDATE debts
		SET personName = ?, amount = ?, description = ?, type = ?, date = ?
		WHERE id = ? AND userId = ?
	`, d.PersonName, d.Amount, d.Description, d.Type, d.Date, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "debt not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionDebts)
	w.WriteHeader(http.StatusOK)
}

// SettleDebt marks an active debt settled. Settling is one way; a settled
// debt stays settled.
func SettleDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec(`
		UPDATE debts
		SET status = ?, settledDate = ?
		WHERE id = ? AND userId = ? AND status = ?
	`, models.DebtSettled, time.Now(), id, userID, models.DebtActive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "active debt not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionDebts)
	w.WriteHeader(http.StatusOK)
}

func DeleteDebt(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM debts WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "debt not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionDebts)
	w.WriteHeader(http.StatusOK)
}
