package services

import (
	"database/sql"
	"fmt"

	"keeply/backend/database"
	"keeply/backend/security"
)

// StoreImageHostKey saves a user's personal image hosting API key, encrypted
// at rest.
func StoreImageHostKey(userID, apiKey string) error {
	encrypted, err := security.Encrypt(apiKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt image host key: %w", err)
	}

	result, err := database.DB.Exec(`
		UPDATE users SET image_host_key = ? WHERE id = ?
	`, encrypted, userID)
	if err != nil {
		return fmt.Errorf("failed to store image host key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// ImageHostKey returns the user's decrypted image hosting API key, or ""
// when none is stored.
func ImageHostKey(userID string) (string, error) {
	var encrypted sql.NullString
	err := database.DB.QueryRow(`
		SELECT image_host_key FROM users WHERE id = ?
	`, userID).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load image host key: %w", err)
	}
	if !encrypted.Valid || encrypted.String == "" {
		return "", nil
	}

	apiKey, err := security.Decrypt(encrypted.String)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt image host key: %w", err)
	}
	return apiKey, nil
}

// ClearImageHostKey removes a stored key so uploads fall back to the
// server-wide one.
func ClearImageHostKey(userID string) error {
	_, err := database.DB.Exec(`UPDATE users SET image_host_key = NULL WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear image host key: %w", err)
	}
	return nil
}
