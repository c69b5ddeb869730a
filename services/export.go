package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"filippo.io/age"

	"keeply/backend/models"
)

// LedgerExport bundles everything the ledger settings screen exports.
type LedgerExport struct {
	ExportDate    time.Time         `json:"exportDate"`
	MonthlyBudget float64           `json:"monthlyBudget"`
	Expenses      []models.Expense  `json:"expenses"`
	Categories    []models.Category `json:"categories"`
	Debts         []models.Debt     `json:"debts"`
}

// CSV renders the export as a single flat sheet: a metadata preamble, then
// one row per record with a Section discriminator column. No import path
// exists, so the layout favors spreadsheet readability over round-tripping.
func (e LedgerExport) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	preamble := [][]string{
		{"Keeply Data Export"},
		{"Export Date", e.ExportDate.Format(time.RFC3339)},
		{"Monthly Budget", formatAmount(e.MonthlyBudget)},
		{},
		{"Section", "ID", "Name", "Description", "Amount", "Category", "Type", "Status", "Date"},
	}
	for _, rec := range preamble {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	for _, exp := range e.Expenses {
		err := w.Write([]string{
			"expense", exp.ID, "", exp.Description, formatAmount(exp.Amount),
			exp.Category, exp.Type, "", exp.Date.Format("2006-01-02"),
		})
		if err != nil {
			return nil, err
		}
	}
	for _, c := range e.Categories {
		err := w.Write([]string{
			"category", c.ID, c.Name, "", formatAmount(c.Budget), "", "", "", "",
		})
		if err != nil {
			return nil, err
		}
	}
	for _, d := range e.Debts {
		err := w.Write([]string{
			"debt", d.ID, d.PersonName, d.Description, formatAmount(d.Amount),
			"", d.Type, d.Status, d.Date.Format("2006-01-02"),
		})
		if err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders the export as an indented document.
func (e LedgerExport) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// EncryptExport seals an export payload with an age scrypt recipient derived
// from the user's passphrase.
func EncryptExport(data []byte, passphrase string) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to derive export recipient: %w", err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to start export encryption: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to encrypt export: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish export encryption: %w", err)
	}
	return buf.Bytes(), nil
}

// DecryptExport opens a passphrase-sealed export payload.
func DecryptExport(data []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to derive export identity: %w", err)
	}
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt export: %w", err)
	}
	return io.ReadAll(r)
}
