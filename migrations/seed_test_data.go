package migrations

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// SeedTestData loads demo data for development and PR environments. Never
// runs in production.
func SeedTestData(db *sql.DB) error {
	if os.Getenv("APP_ENV") == "production" || os.Getenv("ENVIRONMENT") == "production" {
		slog.Info("Refusing to seed test data in production environment")
		return nil
	}
	if os.Getenv("RESET_DB") != "true" &&
		os.Getenv("APP_ENV") != "development" &&
		os.Getenv("PR_DEPLOYMENT") != "true" {
		slog.Debug("Skipping test data seeding")
		return nil
	}

	slog.Info("Seeding test data for development environment")

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	const demoUser = "demo-user-1"
	now := time.Now()

	_, err = tx.Exec(`
		INSERT INTO users (id, email, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, demoUser, "demo@keeply.app", "Demo User")
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	tasks := []struct {
		id, title string
		completed bool
		age       time.Duration
	}{
		{"seed-task-1", "Review lecture notes", true, 2 * time.Hour},
		{"seed-task-2", "Finish chapter 4", true, 26 * time.Hour},
		{"seed-task-3", "Plan weekly budget", false, 0},
	}
	for _, t := range tasks {
		ts := now.Add(-t.age)
		_, err = tx.Exec(`
			INSERT INTO tasks (id, title, completed, createdAt, updatedAt, userId)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, t.id, t.title, t.completed, ts, ts, demoUser)
		if err != nil {
			return fmt.Errorf("failed to seed task %s: %w", t.id, err)
		}
	}

	categories := []struct {
		id, name, color, icon string
		budget                float64
	}{
		{"seed-cat-food", "Food", "#FF6B6B", "fast-food", 300},
		{"seed-cat-transport", "Transport", "#4ECDC4", "bus", 120},
		{"seed-cat-bills", "Bills", "#45B7D1", "receipt", 500},
	}
	for _, c := range categories {
		_, err = tx.Exec(`
			INSERT INTO categories (id, name, color, icon, budget, userId)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, c.id, c.name, c.color, c.icon, c.budget, demoUser)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.name, err)
		}
	}

	expenses := []struct {
		id, category, description, recType string
		amount                             float64
		age                                time.Duration
	}{
		{"seed-exp-1", "Food", "Groceries", "expense", 54.20, 24 * time.Hour},
		{"seed-exp-2", "Transport", "Bus pass", "expense", 25.00, 3 * 24 * time.Hour},
		{"seed-exp-3", "Bills", "Electricity", "expense", 88.75, 5 * 24 * time.Hour},
		{"seed-exp-4", "Food", "Allowance", "income", 200.00, 6 * 24 * time.Hour},
	}
	for _, e := range expenses {
		_, err = tx.Exec(`
			INSERT INTO expenses (id, amount, category, description, date, type, userId)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, e.id, e.amount, e.category, e.description, now.Add(-e.age), e.recType, demoUser)
		if err != nil {
			return fmt.Errorf("failed to seed expense %s: %w", e.id, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO budgets (userId, amount) VALUES (?, ?)
		ON CONFLICT(userId) DO UPDATE SET amount = excluded.amount
	`, demoUser, 1000.0)
	if err != nil {
		return fmt.Errorf("failed to seed budget: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}

	slog.Info("Test data seeded")
	return nil
}
