package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"keeply/backend/database"
	"keeply/backend/middleware"
	"keeply/backend/migrations"

	_ "github.com/mattn/go-sqlite3"
)

// TestUserID is the authenticated user for all handler tests.
const TestUserID = "test-user-id"

// SetupTestDB points database.DB at a fresh in-memory sqlite database with
// the full schema and a test user.
func SetupTestDB() {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	// One connection only: every :memory: connection is its own database
	db.SetMaxOpenConns(1)
	database.DB = db

	if err := migrations.BaseSchema(db); err != nil {
		panic(err)
	}
	if err := migrations.AddImageHostKey(db); err != nil {
		panic(err)
	}
	if err := migrations.AddMonthlySummaries(db); err != nil {
		panic(err)
	}

	_, err = db.Exec(`
		INSERT INTO users (id, email, name) VALUES (?, ?, ?)
	`, TestUserID, "test@keeply.app", "Test User")
	if err != nil {
		panic(err)
	}
}

// CleanupTestDB closes the test database connection.
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
		database.DB = nil
	}
}

// SetupTestAuth adds authentication context to the request.
func SetupTestAuth(req *http.Request) *http.Request {
	return MockAuthContext(req, TestUserID)
}

// MockAuthContext adds the given user ID to the request context.
func MockAuthContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

// NewAuthenticatedRequest creates a request with a JSON body and the test
// user's auth context.
func NewAuthenticatedRequest(method, url string, body interface{}) *http.Request {
	var req *http.Request

	if body != nil {
		buf, _ := json.Marshal(body)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(buf))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	return SetupTestAuth(req)
}
