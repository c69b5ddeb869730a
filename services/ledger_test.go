package services

import (
	"testing"
	"time"

	"keeply/backend/models"
)

func record(id string, amount float64, category, recType string, date time.Time) models.Expense {
	return models.Expense{
		ID:       id,
		Amount:   amount,
		Category: category,
		Type:     recType,
		Date:     date,
		UserID:   "test-user",
	}
}

func TestFilterRecordsWeek(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	records := []models.Expense{
		record("recent", 10, "Food", models.RecordExpense, now.Add(-2*24*time.Hour)),
		record("old", 20, "Food", models.RecordExpense, now.Add(-10*24*time.Hour)),
	}

	got := FilterRecords(records, LedgerFilter{Period: models.PeriodWeek, Now: now})
	if len(got) != 1 || got[0].ID != "recent" {
		t.Errorf("Expected only the recent record, got %v", got)
	}
}

func TestFilterRecordsMonthIsCalendarEquality(t *testing.T) {
	// Last instant of March, viewed from April 2nd: within 7 days of now, but
	// it must not match a month filter for April.
	now := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
	endOfMarch := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
	records := []models.Expense{
		record("march", 10, "Food", models.RecordExpense, endOfMarch),
	}

	april := FilterRecords(records, LedgerFilter{
		Period: models.PeriodMonth, Month: time.April, Year: 2025, Now: now,
	})
	if len(april) != 0 {
		t.Errorf("Expected end-of-March record to miss the April month filter, got %v", april)
	}

	week := FilterRecords(records, LedgerFilter{Period: models.PeriodWeek, Now: now})
	if len(week) != 1 {
		t.Errorf("Expected end-of-March record to match the week filter, got %v", week)
	}
}

func TestFilterRecordsYear(t *testing.T) {
	records := []models.Expense{
		record("this-year", 10, "Food", models.RecordExpense, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)),
		record("last-year", 20, "Food", models.RecordExpense, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)),
	}

	got := FilterRecords(records, LedgerFilter{Period: models.PeriodYear, Year: 2025})
	if len(got) != 1 || got[0].ID != "this-year" {
		t.Errorf("Expected only the 2025 record, got %v", got)
	}
}

func TestFilterRecordsCategory(t *testing.T) {
	now := time.Now()
	records := []models.Expense{
		record("a", 10, "Food", models.RecordExpense, now),
		record("b", 20, "Transport", models.RecordExpense, now),
		record("c", 30, "food", models.RecordExpense, now), // case matters
	}

	got := FilterRecords(records, LedgerFilter{Period: models.PeriodAll, Category: "Food"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Expected exact case-sensitive category match, got %v", got)
	}

	all := FilterRecords(records, LedgerFilter{Period: models.PeriodAll, Category: FilterAll})
	if len(all) != 3 {
		t.Errorf("Expected the all sentinel to bypass category matching, got %d records", len(all))
	}
}

func TestFilterRecordsIdempotent(t *testing.T) {
	now := time.Now()
	f := LedgerFilter{Period: models.PeriodMonth, Month: now.Month(), Year: now.Year(), Now: now}
	records := []models.Expense{
		record("a", 10, "Food", models.RecordExpense, now),
		record("b", 20, "Food", models.RecordExpense, now.AddDate(0, -2, 0)),
		record("c", 30, "Food", models.RecordExpense, now),
	}

	once := FilterRecords(records, f)
	twice := FilterRecords(once, f)

	if len(once) != len(twice) {
		t.Fatalf("Filtering twice changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("Filtering twice reordered records at %d: %s vs %s", i, once[i].ID, twice[i].ID)
		}
	}
}

func TestSummarizeTotals(t *testing.T) {
	now := time.Now()
	records := []models.Expense{
		record("a", 100, "Food", models.RecordExpense, now),
		record("b", 50, "Salary", models.RecordIncome, now),
	}

	s := Summarize(records, nil, 0)
	if s.TotalSpent != 100 {
		t.Errorf("Expected totalSpent 100, got %f", s.TotalSpent)
	}
	if s.TotalIncome != 50 {
		t.Errorf("Expected totalIncome 50, got %f", s.TotalIncome)
	}
	if s.Balance != -50 {
		t.Errorf("Expected balance -50, got %f", s.Balance)
	}
	if s.ProgressPercent != 0 {
		t.Errorf("Expected progress 0 with no budget, got %d", s.ProgressPercent)
	}
}

func TestSummarizeZeroBudgetGuard(t *testing.T) {
	now := time.Now()
	records := []models.Expense{
		record("a", 75, "Food", models.RecordExpense, now),
	}
	categories := []models.Category{
		{ID: "cat1", Name: "Food", Budget: 0, UserID: "test-user"},
	}

	s := Summarize(records, categories, 0)
	if len(s.Categories) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(s.Categories))
	}
	if s.Categories[0].Percent != 0 {
		t.Errorf("Expected percent 0 for zero budget, got %f", s.Categories[0].Percent)
	}
	if s.Categories[0].BarPercent != 0 {
		t.Errorf("Expected bar percent 0 for zero budget, got %f", s.Categories[0].BarPercent)
	}
}

func TestSummarizePerCategory(t *testing.T) {
	now := time.Now()
	records := []models.Expense{
		record("a", 95, "Food", models.RecordExpense, now),
		record("b", 30, "Transport", models.RecordExpense, now),
		record("c", 200, "Rent", models.RecordExpense, now),
	}
	categories := []models.Category{
		{ID: "1", Name: "Food", Budget: 100},
		{ID: "2", Name: "Transport", Budget: 100},
		{ID: "3", Name: "Rent", Budget: 100},
	}

	s := Summarize(records, categories, 500)

	food := s.Categories[0]
	if food.Percent != 95 || !food.Warning {
		t.Errorf("Expected Food at 95%% with warning, got %f warning=%v", food.Percent, food.Warning)
	}

	transport := s.Categories[1]
	if transport.Percent != 30 || transport.Warning {
		t.Errorf("Expected Transport at 30%% without warning, got %f warning=%v", transport.Percent, transport.Warning)
	}

	rent := s.Categories[2]
	if rent.Percent != 200 {
		t.Errorf("Expected raw Rent percent 200, got %f", rent.Percent)
	}
	if rent.BarPercent != 100 {
		t.Errorf("Expected Rent bar clamped to 100, got %f", rent.BarPercent)
	}

	if s.ProgressPercent != 65 {
		t.Errorf("Expected progress 65 (325/500), got %d", s.ProgressPercent)
	}
	if s.Remaining != 175 {
		t.Errorf("Expected remaining 175, got %f", s.Remaining)
	}
}
