package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresConfig holds database connection parameters for deployments that
// don't hand us a full DATABASE_URL.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ConnectionString builds a PostgreSQL connection string from components.
func (cfg PostgresConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)
}

// OpenPostgres connects to PostgreSQL with the given connection string.
func OpenPostgres(connectionString string) (*sql.DB, error) {
	slog.Info("Connecting to PostgreSQL", "dsn", MaskPassword(connectionString))

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL")
	return db, nil
}

// MaskPassword masks the password in a connection string for logging.
func MaskPassword(connStr string) string {
	result := ""
	inPassword := false

	for i := 0; i < len(connStr); i++ {
		if inPassword {
			if connStr[i] == '@' {
				inPassword = false
				result += "@"
			} else {
				result += "*"
			}
		} else if i > 0 && connStr[i] == ':' && connStr[i-1] != '/' {
			result += ":"
			inPassword = true
		} else {
			result += string(connStr[i])
		}
	}

	return result
}
