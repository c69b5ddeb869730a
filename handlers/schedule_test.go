package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"keeply/backend/models"
)

func TestAddScheduleValidatesDateAndTime(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	cases := []struct {
		name     string
		schedule models.Schedule
	}{
		{"Bad date", models.Schedule{Subject: "Math", Date: "03-01-2026", Time: "10:00"}},
		{"Bad time", models.Schedule{Subject: "Math", Date: "2026-03-01", Time: "10am"}},
		{"Missing subject", models.Schedule{Date: "2026-03-01", Time: "10:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := NewAuthenticatedRequest("POST", "/schedules", tc.schedule)
			w := httptest.NewRecorder()
			AddSchedule(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestSchedulesOrderedByDateAndTime(t *testing.T) {
	SetupTestDB()
	defer CleanupTestDB()

	entries := []models.Schedule{
		{Subject: "Chemistry", Date: "2026-03-02", Time: "09:00"},
		{Subject: "Math", Date: "2026-03-01", Time: "14:00"},
		{Subject: "History", Date: "2026-03-01", Time: "09:00"},
	}
	for _, s := range entries {
		w := httptest.NewRecorder()
		AddSchedule(w, NewAuthenticatedRequest("POST", "/schedules", s))
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}
	}

	req := NewAuthenticatedRequest("GET", "/schedules", nil)
	w := httptest.NewRecorder()
	GetSchedules(w, req)

	var schedules []models.Schedule
	if err := json.NewDecoder(w.Body).Decode(&schedules); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(schedules) != 3 {
		t.Fatalf("Expected 3 schedules, got %d", len(schedules))
	}
	want := []string{"History", "Math", "Chemistry"}
	for i, subject := range want {
		if schedules[i].Subject != subject {
			t.Errorf("Expected %s at position %d, got %s", subject, i, schedules[i].Subject)
		}
	}
}
