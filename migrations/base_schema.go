package migrations

import (
	"database/sql"
	"fmt"
)

// BaseSchema creates the core collection tables. Every record carries the
// owning user's id; queries always filter on it.
func BaseSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT,
			name TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			completed BOOLEAN NOT NULL DEFAULT 0,
			deadline DATETIME,
			createdAt DATETIME NOT NULL,
			updatedAt DATETIME NOT NULL,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			createdAt DATETIME NOT NULL,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			folderId TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			coverUrl TEXT,
			rating INTEGER NOT NULL DEFAULT 0,
			favorite BOOLEAN NOT NULL DEFAULT 0,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			createdAt DATETIME NOT NULL,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			amount REAL NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			date DATETIME NOT NULL,
			type TEXT NOT NULL,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT,
			icon TEXT,
			budget REAL NOT NULL DEFAULT 0,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS debts (
			id TEXT PRIMARY KEY,
			personName TEXT NOT NULL,
			amount REAL NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			date DATETIME NOT NULL,
			settledDate DATETIME,
			userId TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			userId TEXT PRIMARY KEY,
			amount REAL NOT NULL DEFAULT 0
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create base schema: %w", err)
		}
	}
	return nil
}
