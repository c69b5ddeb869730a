package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"keeply/backend/models"
)

func testExport() LedgerExport {
	date := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	return LedgerExport{
		ExportDate:    date,
		MonthlyBudget: 1500,
		Expenses: []models.Expense{
			{ID: "e1", Amount: 42.50, Category: "Food", Description: "groceries", Date: date, Type: models.RecordExpense, UserID: "u1"},
		},
		Categories: []models.Category{
			{ID: "c1", Name: "Food", Budget: 300, UserID: "u1"},
		},
		Debts: []models.Debt{
			{ID: "d1", PersonName: "Alex", Amount: 20, Type: models.DebtOwedToMe, Status: models.DebtActive, Date: date, UserID: "u1"},
		},
	}
}

func TestExportCSV(t *testing.T) {
	data, err := testExport().CSV()
	if err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}

	out := string(data)
	for _, want := range []string{"Keeply Data Export", "expense,e1", "category,c1,Food", "debt,d1,Alex", "42.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("CSV missing %q:\n%s", want, out)
		}
	}
}

func TestExportJSON(t *testing.T) {
	data, err := testExport().JSON()
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}

	var decoded LedgerExport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Export JSON does not decode: %v", err)
	}
	if len(decoded.Expenses) != 1 || decoded.Expenses[0].ID != "e1" {
		t.Errorf("Expected expense e1 in decoded export, got %v", decoded.Expenses)
	}
	if decoded.MonthlyBudget != 1500 {
		t.Errorf("Expected monthly budget 1500, got %f", decoded.MonthlyBudget)
	}
}

func TestExportEncryptionRoundTrip(t *testing.T) {
	plain, err := testExport().JSON()
	if err != nil {
		t.Fatal(err)
	}

	sealed, err := EncryptExport(plain, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Encryption failed: %v", err)
	}
	if bytes.Contains(sealed, []byte("groceries")) {
		t.Error("Encrypted export leaks plaintext")
	}

	opened, err := DecryptExport(sealed, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Decryption failed: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Error("Round trip changed the payload")
	}

	if _, err := DecryptExport(sealed, "wrong passphrase"); err == nil {
		t.Error("Expected decryption with the wrong passphrase to fail")
	}
}
