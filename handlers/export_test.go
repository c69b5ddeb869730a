package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"keeply/backend/models"
	"keeply/backend/services"
)

func TestExportLedgerJSON(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	seedExpense(t, "exp-1", 42.5, "Food", models.RecordExpense, time.Now())
	seedDebt(t, "debt-1", models.DebtActive)

	req := NewAuthenticatedRequest("POST", "/ledger/export", exportRequest{Format: "json"})
	w := httptest.NewRecorder()
	ExportLedger(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var export services.LedgerExport
	if err := json.NewDecoder(w.Body).Decode(&export); err != nil {
		t.Fatalf("Error decoding export: %v", err)
	}
	if len(export.Expenses) != 1 || export.Expenses[0].Amount != 42.5 {
		t.Errorf("Expected the seeded expense in the export, got %+v", export.Expenses)
	}
	if len(export.Debts) != 1 {
		t.Errorf("Expected the seeded debt in the export, got %+v", export.Debts)
	}
}

func TestExportLedgerCSV(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	seedExpense(t, "exp-1", 10, "Food", models.RecordExpense, time.Now())

	req := NewAuthenticatedRequest("POST", "/ledger/export", exportRequest{Format: "csv"})
	w := httptest.NewRecorder()
	ExportLedger(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Keeply Data Export") {
		t.Error("Expected CSV preamble in export")
	}
	if !strings.Contains(body, "expense,exp-1") {
		t.Errorf("Expected expense row in CSV, got:\n%s", body)
	}
}

func TestExportLedgerEncrypted(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	seedExpense(t, "exp-1", 10, "Food", models.RecordExpense, time.Now())

	req := NewAuthenticatedRequest("POST", "/ledger/export",
		exportRequest{Format: "json", Passphrase: "hunter2"})
	w := httptest.NewRecorder()
	ExportLedger(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Errorf("Expected octet-stream for encrypted export, got %s", ct)
	}

	plain, err := services.DecryptExport(w.Body.Bytes(), "hunter2")
	if err != nil {
		t.Fatalf("Failed to decrypt export: %v", err)
	}
	var export services.LedgerExport
	if err := json.Unmarshal(plain, &export); err != nil {
		t.Fatalf("Decrypted payload is not the JSON export: %v", err)
	}
}

func TestExportLedgerRejectsUnknownFormat(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("POST", "/ledger/export", exportRequest{Format: "xml"})
	w := httptest.NewRecorder()
	ExportLedger(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
