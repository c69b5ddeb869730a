package migrations

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// AddImageHostKey adds the column holding a user's personal image hosting
// API key (stored encrypted).
func AddImageHostKey(db *sql.DB) error {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('users')
		WHERE name = 'image_host_key'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("error checking for image_host_key column: %w", err)
	}

	if count > 0 {
		slog.Debug("image_host_key column already exists")
		return nil
	}

	_, err = db.Exec(`
		ALTER TABLE users
		ADD COLUMN image_host_key TEXT
	`)
	if err != nil {
		return fmt.Errorf("error adding image_host_key column: %w", err)
	}

	return nil
}
