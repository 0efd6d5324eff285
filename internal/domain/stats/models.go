package stats

import (
	"tally/internal/domain/category"
)

// CategoryStat is one per-category group within the aggregation window:
// summed amount and transaction count, joined to the category's display
// fields. Groups whose category no longer exists are dropped.
type CategoryStat struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	Total      float64 `json:"total"`
	Count      int64   `json:"count"`
}

// DailyStat is the summed amount for one (calendar day, type) pair. Days
// with no activity for a type produce no entry; consumers treat absence
// as zero.
type DailyStat struct {
	Date  string        `json:"date"` // YYYY-MM-DD
	Type  category.Type `json:"type"`
	Total float64       `json:"total"`
}

// Summary is the full aggregation result for one user and window.
type Summary struct {
	ExpenseStats []CategoryStat `json:"expenseStats"`
	IncomeStats  []CategoryStat `json:"incomeStats"`
	TotalExpense float64        `json:"totalExpense"`
	TotalIncome  float64        `json:"totalIncome"`
	Balance      float64        `json:"balance"`
	DailyStats   []DailyStat    `json:"dailyStats"`
}
