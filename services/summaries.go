package services

import (
	"database/sql"
	"fmt"
	"time"

	"keeply/backend/database"
	"keeply/backend/models"
)

// BuildSummary loads a user's ledger state and derives the summary for the
// given filter. Records are filtered in memory after a single owner-scoped
// query, the same shape the screens use.
func BuildSummary(userID string, f LedgerFilter) (models.LedgerSummary, error) {
	records, err := loadExpenses(userID)
	if err != nil {
		return models.LedgerSummary{}, err
	}
	categories, err := loadCategories(userID)
	if err != nil {
		return models.LedgerSummary{}, err
	}
	budget, err := loadMonthlyBudget(userID)
	if err != nil {
		return models.LedgerSummary{}, err
	}

	return Summarize(FilterRecords(records, f), categories, budget), nil
}

// SnapshotMonthlySummaries recomputes the current calendar month's summary
// for every user and upserts it into monthly_summaries. Run nightly by the
// scheduler.
func SnapshotMonthlySummaries(now time.Time) error {
	rows, err := database.DB.Query("SELECT id FROM users")
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, userID := range userIDs {
		summary, err := BuildSummary(userID, LedgerFilter{
			Period: models.PeriodMonth,
			Month:  now.Month(),
			Year:   now.Year(),
			Now:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to summarize for user %s: %w", userID, err)
		}

		_, err = database.DB.Exec(`
			INSERT INTO monthly_summaries (userId, year, month, totalSpent, totalIncome, balance, monthlyBudget, progressPercent, updatedAt)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(userId, year, month) DO UPDATE SET
				totalSpent = excluded.totalSpent,
				totalIncome = excluded.totalIncome,
				balance = excluded.balance,
				monthlyBudget = excluded.monthlyBudget,
				progressPercent = excluded.progressPercent,
				updatedAt = excluded.updatedAt
		`, userID, now.Year(), int(now.Month()), summary.TotalSpent, summary.TotalIncome,
			summary.Balance, summary.MonthlyBudget, summary.ProgressPercent, now.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to store summary for user %s: %w", userID, err)
		}
	}

	return nil
}

// MonthlySummaryHistory returns a user's stored month snapshots, most recent
// first.
func MonthlySummaryHistory(userID string) ([]models.MonthlySummary, error) {
	rows, err := database.DB.Query(`
		SELECT userId, year, month, totalSpent, totalIncome, balance, monthlyBudget, progressPercent, updatedAt
		FROM monthly_summaries
		WHERE userId = ?
		ORDER BY year DESC, month DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.MonthlySummary
	for rows.Next() {
		var s models.MonthlySummary
		err := rows.Scan(&s.UserID, &s.Year, &s.Month, &s.TotalSpent, &s.TotalIncome,
			&s.Balance, &s.MonthlyBudget, &s.ProgressPercent, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func loadExpenses(userID string) ([]models.Expense, error) {
	rows, err := database.DB.Query(`
		SELECT id, amount, category, description, date, type, userId
		FROM expenses
		WHERE userId = ?
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var records []models.Expense
	for rows.Next() {
		var e models.Expense
		var description sql.NullString
		err := rows.Scan(&e.ID, &e.Amount, &e.Category, &description, &e.Date, &e.Type, &e.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if description.Valid {
			e.Description = description.String
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

func loadCategories(userID string) ([]models.Category, error) {
	rows, err := database.DB.Query(`
		SELECT id, name, color, icon, budget, userId
		FROM categories
		WHERE userId = ?
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var color, icon sql.NullString
		err := rows.Scan(&c.ID, &c.Name, &color, &icon, &c.Budget, &c.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if color.Valid {
			c.Color = color.String
		}
		if icon.Valid {
			c.Icon = icon.String
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func loadMonthlyBudget(userID string) (float64, error) {
	var budget float64
	err := database.DB.QueryRow(`
		SELECT amount FROM budgets WHERE userId = ?
	`, userID).Scan(&budget)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query monthly budget: %w", err)
	}
	return budget, nil
}
