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
)

type exportRequest struct {
	Format     string `json:"format"`               // csv or json
	Passphrase string `json:"passphrase,omitempty"` // encrypts the payload when set
}

// ExportLedger streams the user's full finance data as CSV or JSON,
// optionally passphrase-encrypted.
func ExportLedger(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Format != "csv" && req.Format != "json" {
		http.Error(w, "format must be csv or json", http.StatusBadRequest)
		return
	}

	export, err := buildExport(userID)
	if err != nil {
		slog.Error("Error building export", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var payload []byte
	contentType := "application/json"
	filename := "keeply-export.json"
	if req.Format == "csv" {
		payload, err = export.CSV()
		contentType = "text/csv"
		filename = "keeply-export.csv"
	} else {
		payload, err = export.JSON()
	}
	if err != nil {
		slog.Error("Error encoding export", "format", req.Format, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Passphrase != "" {
		payload, err = services.EncryptExport(payload, req.Passphrase)
		if err != nil {
			slog.Error("Error encrypting export", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		contentType = "application/octet-stream"
		filename += ".age"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(payload)
}

func buildExport(userID string) (services.LedgerExport, error) {
	export := services.LedgerExport{ExportDate: time.Now()}

	expenses, err := queryExpenses(userID)
	if err != nil {
		return export, err
	}
	export.Expenses = expenses

	categories, err := queryCategories(userID)
	if err != nil {
		return export, err
	}
	export.Categories = categories

	debts, err := queryDebtsForExport(userID)
	if err != nil {
		return export, err
	}
	export.Debts = debts

	err = database.DB.QueryRow("SELECT amount FROM budgets WHERE userId = ?", userID).
		Scan(&export.MonthlyBudget)
	if err != nil && err != sql.ErrNoRows {
		return export, err
	}

	return export, nil
}

func queryDebtsForExport(userID string) ([]models.Debt, error) {
	rows, err := database.DB.Query(`
		SELECT id, personName, amount, description, type, status, date, settledDate
		FROM debts
		WHERE userId = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	debts := []models.Debt{}
	for rows.Next() {
		var d models.Debt
		var description sql.NullString
		var settledDate sql.NullTime
		if err := rows.Scan(&d.ID, &d.PersonName, &d.Amount, &description, &d.Type, &d.Status, &d.Date, &settledDate); err != nil {
			return nil, err
		}
		d.Description = description.String
		if settledDate.Valid {
			t := settledDate.Time
			d.SettledDate = &t
		}
		d.UserID = userID
		debts = append(debts, d)
	}
	return debts, rows.Err()
}
