package database

import (
	"database/sql"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"keeply/backend/migrations"
)

var DB *sql.DB

// InitDB opens the database and brings the schema up to date. A non-empty
// databaseURL selects PostgreSQL; otherwise sqlite at path is used, with an
// in-memory database under TEST_DB=1.
func InitDB(path, databaseURL string) error {
	if databaseURL != "" {
		db, err := OpenPostgres(databaseURL)
		if err != nil {
			return err
		}
		DB = db
		return migrations.RunMigrations(DB)
	}

	inMemory := os.Getenv("TEST_DB") == "1"

	var err error
	if inMemory {
		DB, err = sql.Open("sqlite3", ":memory:")
	} else {
		// Connection parameters for better concurrency handling
		DB, err = sql.Open("sqlite3", path+"?_journal=WAL&_timeout=10000&_busy_timeout=10000")
	}
	if err != nil {
		return err
	}

	if inMemory {
		// Every :memory: connection is its own database
		DB.SetMaxOpenConns(1)
	} else {
		DB.SetMaxOpenConns(5)
		DB.SetMaxIdleConns(5)
		DB.SetConnMaxLifetime(time.Minute * 5)
	}

	if _, err = DB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	if _, err = DB.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	return migrations.RunMigrations(DB)
}
