package models

// LedgerSummary holds the derived totals for a filtered set of records.
type LedgerSummary struct {
	TotalSpent      float64         `json:"totalSpent"`
	TotalIncome     float64         `json:"totalIncome"`
	Balance         float64         `json:"balance"`
	MonthlyBudget   float64         `json:"monthlyBudget"`
	Remaining       float64         `json:"remaining"`
	ProgressPercent int             `json:"progressPercent"`
	Categories      []CategorySpend `json:"categories"`
}

// CategorySpend is the per-category slice of a ledger summary. Percent is the
// raw spend-to-budget ratio; BarPercent is clamped to [0,100] for progress-bar
// width. Warning fires off the raw value so an over-budget category stays red
// even though its bar is pinned at 100.
type CategorySpend struct {
	Name       string  `json:"name"`
	Color      string  `json:"color,omitempty"`
	Icon       string  `json:"icon,omitempty"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percent    float64 `json:"percent"`
	BarPercent float64 `json:"barPercent"`
	Warning    bool    `json:"warning"`
}

// MonthlySummary is a persisted snapshot of a user's ledger summary for one
// calendar month, written by the nightly scheduler.
type MonthlySummary struct {
	UserID          string  `json:"userId"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	TotalSpent      float64 `json:"totalSpent"`
	TotalIncome     float64 `json:"totalIncome"`
	Balance         float64 `json:"balance"`
	MonthlyBudget   float64 `json:"monthlyBudget"`
	ProgressPercent int     `json:"progressPercent"`
	UpdatedAt       string  `json:"updatedAt"`
}
