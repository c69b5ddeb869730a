package migrations

import (
	"database/sql"
	"fmt"
)

// AddMonthlySummaries creates the table holding nightly per-user ledger
// snapshots.
func AddMonthlySummaries(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS monthly_summaries (
			userId TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			totalSpent REAL NOT NULL DEFAULT 0,
			totalIncome REAL NOT NULL DEFAULT 0,
			balance REAL NOT NULL DEFAULT 0,
			monthlyBudget REAL NOT NULL DEFAULT 0,
			progressPercent INTEGER NOT NULL DEFAULT 0,
			updatedAt TEXT NOT NULL,
			PRIMARY KEY (userId, year, month)
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating monthly_summaries table: %w", err)
	}
	return nil
}
