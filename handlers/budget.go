package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"keeply/backend/database"
	"keeply/backend/middleware"
)

type budgetPayload struct {
	Amount float64 `json:"amount"`
}

// GetBudget returns the user's monthly budget, zero if never set.
func GetBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var amount float64
	err := database.DB.QueryRow("SELECT amount FROM budgets WHERE userId = ?", userID).Scan(&amount)
	if err != nil && err != sql.ErrNoRows {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(budgetPayload{Amount: amount})
}

func UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var p budgetPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.Amount < 0 {
		http.Error(w, "amount must not be negative", http.StatusBadRequest)
		return
	}

	_, err := database.DB.Exec(`
		INSERT INTO budgets (userId, amount) VALUES (?, ?)
		ON CONFLICT(userId) DO UPDATE SET amount = excluded.amount
	`, userID, p.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
