package services

import (
	"math"
	"time"

	"keeply/backend/models"
)

// FilterAll is the sentinel category value that bypasses category matching.
const FilterAll = "all"

// LedgerFilter selects expense/income records by period and category.
type LedgerFilter struct {
	Period   string     // week, month, year or all
	Month    time.Month // month period only
	Year     int        // month and year periods
	Category string     // exact category name; empty or "all" matches everything
	Now      time.Time  // reference instant for the week period
}

// FilterRecords returns the subset of records matching the filter. Single
// pass, relative order preserved, input never mutated. The week period is a
// rolling seven days back from Now; the month period is calendar month+year
// equality against the selected month/year, never "last 30 days".
func FilterRecords(records []models.Expense, f LedgerFilter) []models.Expense {
	out := make([]models.Expense, 0, len(records))
	for _, rec := range records {
		if !matchesPeriod(rec.Date, f) {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && rec.Category != f.Category {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesPeriod(date time.Time, f LedgerFilter) bool {
	switch f.Period {
	case models.PeriodWeek:
		return !date.Before(f.Now.Add(-7 * 24 * time.Hour))
	case models.PeriodMonth:
		return date.Month() == f.Month && date.Year() == f.Year
	case models.PeriodYear:
		return date.Year() == f.Year
	default:
		// "all" and anything unrecognized apply no date predicate
		return true
	}
}

// Summarize derives the ledger totals from already-filtered records. Zero
// budgets never divide: a category with budget 0 reports 0 percent, and a
// zero monthly budget yields progress 0.
func Summarize(records []models.Expense, categories []models.Category, monthlyBudget float64) models.LedgerSummary {
	s := models.LedgerSummary{MonthlyBudget: monthlyBudget}

	spentByCategory := make(map[string]float64)
	for _, rec := range records {
		switch rec.Type {
		case models.RecordExpense:
			s.TotalSpent += rec.Amount
			spentByCategory[rec.Category] += rec.Amount
		case models.RecordIncome:
			s.TotalIncome += rec.Amount
		}
	}

	s.Balance = s.TotalIncome - s.TotalSpent
	s.Remaining = monthlyBudget - s.TotalSpent
	if monthlyBudget > 0 {
		s.ProgressPercent = int(math.Round(s.TotalSpent / monthlyBudget * 100))
	}

	for _, c := range categories {
		cs := models.CategorySpend{
			Name:   c.Name,
			Color:  c.Color,
			Icon:   c.Icon,
			Spent:  spentByCategory[c.Name],
			Budget: c.Budget,
		}
		if c.Budget > 0 {
			cs.Percent = cs.Spent / c.Budget * 100
		}
		cs.BarPercent = math.Min(cs.Percent, 100)
		cs.Warning = cs.Percent > 90
		s.Categories = append(s.Categories, cs)
	}

	return s
}
