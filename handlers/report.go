package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"keeply/backend/middleware"
	"keeply/backend/services"
)

// GetLedgerSummary returns derived totals and per-category breakdown for the
// filtered ledger. Accepts the same query parameters as GetExpenses.
func GetLedgerSummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := services.BuildSummary(userID, filter)
	if err != nil {
		slog.Error("Error building ledger summary", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// GetLedgerSummaryHistory returns the persisted monthly snapshots, newest
// first.
func GetLedgerSummaryHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	history, err := services.MonthlySummaryHistory(userID)
	if err != nil {
		slog.Error("Error loading summary history", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}
