package services

import (
	"testing"
	"time"

	"keeply/backend/models"
)

func completedAt(ts time.Time) models.Task {
	return models.Task{
		ID:        "task-" + ts.Format(time.RFC3339),
		Title:     "test task",
		Completed: true,
		UpdatedAt: ts,
	}
}

func TestCalculateStreakEmpty(t *testing.T) {
	if got := CalculateStreak(nil, time.Now()); got != 0 {
		t.Errorf("Expected streak 0 for no tasks, got %d", got)
	}
}

func TestCalculateStreakIgnoresIncomplete(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		{ID: "1", Title: "open task", Completed: false, UpdatedAt: now},
		{ID: "2", Title: "never touched", Completed: true},
	}
	if got := CalculateStreak(tasks, now); got != 0 {
		t.Errorf("Expected streak 0, got %d", got)
	}
}

func TestCalculateStreakYesterdayAndToday(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-2 * time.Hour)),
		completedAt(now.Add(-26 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 2 {
		t.Errorf("Expected streak 2, got %d", got)
	}
}

func TestCalculateStreakGapBreaksChain(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-1 * time.Hour)),
		completedAt(now.Add(-73 * time.Hour)), // three days ago
	}
	if got := CalculateStreak(tasks, now); got != 1 {
		t.Errorf("Expected streak 1, got %d", got)
	}
}

func TestCalculateStreakStaleCompletion(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-48 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 0 {
		t.Errorf("Expected streak 0 for a two-day-old completion, got %d", got)
	}
}

func TestCalculateStreakSameDayRepeatsDontInflate(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-1 * time.Hour)),
		completedAt(now.Add(-3 * time.Hour)),
		completedAt(now.Add(-5 * time.Hour)),
		completedAt(now.Add(-25 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 2 {
		t.Errorf("Expected streak 2, got %d", got)
	}
}

func TestCalculateStreakThreeConsecutiveDays(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-1 * time.Hour)),
		completedAt(now.Add(-25 * time.Hour)),
		completedAt(now.Add(-49 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 3 {
		t.Errorf("Expected streak 3, got %d", got)
	}

	// A completion well before the chain must not change the result once the
	// chain is already broken there.
	tasks = append(tasks, completedAt(now.Add(-5*24*time.Hour)))
	if got := CalculateStreak(tasks, now); got != 3 {
		t.Errorf("Expected streak 3 after stale extra completion, got %d", got)
	}
}

func TestCalculateStreakOrderIrrelevant(t *testing.T) {
	now := time.Now()
	tasks := []models.Task{
		completedAt(now.Add(-25 * time.Hour)),
		completedAt(now.Add(-1 * time.Hour)),
	}
	if got := CalculateStreak(tasks, now); got != 2 {
		t.Errorf("Expected streak 2 regardless of input order, got %d", got)
	}
}
