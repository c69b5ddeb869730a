package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"keeply/backend/database"
	"keeply/backend/middleware"
	"keeply/backend/models"
	"keeply/backend/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// GetExpenses lists the user's ledger records, optionally narrowed by
// period (week, month, year, all), month, year and category query params.
func GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseLedgerFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := queryExpenses(userID)
	if err != nil {
		slog.Error("Error querying expenses", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := services.FilterRecords(records, filter)
	if filtered == nil {
		filtered = []models.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filtered)
}

// parseLedgerFilter builds a ledger filter from query parameters. Month and
// year default to the current calendar month.
func parseLedgerFilter(r *http.Request) (services.LedgerFilter, error) {
	now := time.Now()
	f := services.LedgerFilter{
		Period:   r.URL.Query().Get("period"),
		Month:    now.Month(),
		Year:     now.Year(),
		Category: r.URL.Query().Get("category"),
		Now:      now,
	}
	if f.Period == "" {
		f.Period = models.PeriodAll
	}
	switch f.Period {
	case models.PeriodWeek, models.PeriodMonth, models.PeriodYear, models.PeriodAll:
	default:
		return f, errInvalidPeriod
	}

	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return f, errInvalidMonth
		}
		f.Month = time.Month(month)
	}
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, errInvalidYear
		}
		f.Year = year
	}
	return f, nil
}

var (
	errInvalidPeriod = &badRequestError{"period must be week, month, year or all"}
	errInvalidMonth  = &badRequestError{"month must be between 1 and 12"}
	errInvalidYear   = &badRequestError{"year must be a number"}
)

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func queryExpenses(userID string) ([]models.Expense, error) {
	rows, err := database.DB.Query(`
		SELECT id, amount, category, description, date, type
		FROM expenses
		WHERE userId = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &description, &e.Date, &e.Type); err != nil {
			return nil, err
		}
		e.Description = description.String
		e.UserID = userID
		records = append(records, e)
	}
	return records, rows.Err()
}

func AddExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var e models.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if e.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if e.Category == "" {
		http.Error(w, "category is required", http.StatusBadRequest)
		return
	}
	if e.Type != models.RecordExpense && e.Type != models.RecordIncome {
		http.Error(w, "type must be expense or income", http.StatusBadRequest)
		return
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	e.UserID = userID

	_, err := database.DB.Exec(`
		INSERT INTO expenses (id, amount, category, description, date, type, userId)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Amount, e.Category, e.Description, e.Date, e.Type, e.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	services.Hub.Publish(userID, models.CollectionExpenses)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

func UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	var e models.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if e.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if e.Type != models.RecordExpense && e.Type != models.RecordIncome {
		http.Error(w, "type must be expense or income", http.StatusBadRequest)
		return
	}

	result, err := database.DB.Exec(`
		UPDATE expenses
		SET amount = ?, category = ?, description = ?, date = ?, type = ?
		WHERE id = ? AND userId = ?
	`, e.Amount, e.Category, e.Description, e.Date, e.Type, id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionExpenses)
	w.WriteHeader(http.StatusOK)
}

func DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]

	result, err := database.DB.Exec("DELETE FROM expenses WHERE id = ? AND userId = ?", id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}

	services.Hub.Publish(userID, models.CollectionExpenses)
	w.WriteHeader(http.StatusOK)
}
