package models

// Record types
const (
	RecordExpense = "expense"
	RecordIncome  = "income"
)

// Filter periods
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Debt types
const (
	DebtOwedToMe = "owed_to_me"
	DebtIOwe     = "i_owe"
)

// Debt statuses
const (
	DebtActive  = "active"
	DebtSettled = "settled"
)

// Streamable collections
const (
	CollectionTasks      = "tasks"
	CollectionFolders    = "folders"
	CollectionBooks      = "books"
	CollectionSchedules  = "schedules"
	CollectionExpenses   = "expenses"
	CollectionCategories = "categories"
	CollectionDebts      = "debts"
)
