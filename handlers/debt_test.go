package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"keeply/backend/database"
	"keeply/backend/models"

	"github.com/gorilla/mux"
)

func seedDebt(t *testing.T, id, status string) {
	t.Helper()
	_, err := database.DB.Exec(`
		INSERT INTO debts (id, personName, amount, type, status, date, userId)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, "Alex", 40.0, models.DebtOwedToMe, status, time.Now(), TestUserID)
	if err != nil {
		t.Fatal(err)
	}
}

func TestAddDebtStartsActive(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("POST", "/debts", models.Debt{
		PersonName: "Sam",
		Amount:     25,
		Type:       models.DebtIOwe,
		Status:     models.DebtSettled, // client cannot pre-settle
	})
	w := httptest.NewRecorder()
	AddDebt(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var created models.Debt
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if created.Status != models.DebtActive {
		t.Errorf("Expected new debt to be active, got %s", created.Status)
	}
	if created.SettledDate != nil {
		t.Error("Expected no settled date on a new debt")
	}
}

func TestSettleDebtIsOneWay(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	seedDebt(t, "debt-1", models.DebtActive)

	r := mux.NewRouter()
	r.HandleFunc("/debts/{id}/settle", SettleDebt).Methods("POST")

	req := NewAuthenticatedRequest("POST", "/debts/debt-1/settle", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var status string
	var settledDate *time.Time
	if err := database.DB.QueryRow("SELECT status, settledDate FROM debts WHERE id = ?", "debt-1").Scan(&status, &settledDate); err != nil {
		t.Fatal(err)
	}
	if status != models.DebtSettled {
		t.Errorf("Expected settled status, got %s", status)
	}
	if settledDate == nil {
		t.Error("Expected settledDate to be stamped")
	}

	// Settling again finds no active debt
	w = httptest.NewRecorder()
	r.ServeHTTP(w, NewAuthenticatedRequest("POST", "/debts/debt-1/settle", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d on second settle, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetDebtsStatusFilter(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	seedDebt(t, "debt-active", models.DebtActive)
	seedDebt(t, "debt-settled", models.DebtSettled)

	req := NewAuthenticatedRequest("GET", "/debts?status=active", nil)
	w := httptest.NewRecorder()
	GetDebts(w, req)

	var debts []models.Debt
	if err := json.NewDecoder(w.Body).Decode(&debts); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(debts) != 1 || debts[0].ID != "debt-active" {
		t.Errorf("Expected only the active debt, got %+v", debts)
	}
}

func TestAddDebtValidatesType(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	req := NewAuthenticatedRequest("POST", "/debts", models.Debt{
		PersonName: "Sam",
		Amount:     25,
		Type:       "loan",
	})
	w := httptest.NewRecorder()
	AddDebt(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
