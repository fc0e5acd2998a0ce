package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal progress status values
const (
	GoalStatusOnTrack        = "on_track"
	GoalStatusOverBudget     = "over_budget"
	GoalStatusExceededTarget = "exceeded_target"
)

// AggregatedTotals holds the type-level sums over a window
type AggregatedTotals struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
}

// CategoryRollup is the sum of one category's values over a window
type CategoryRollup struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyBucket holds the per-type sums of one calendar month
type MonthlyBucket struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// GoalProgress joins a goal with the actual value recorded for its category
type GoalProgress struct {
	GoalID          uuid.UUID       `json:"goal_id"`
	Type            TransactionType `json:"type"`
	Category        string          `json:"category"`
	TargetValue     decimal.Decimal `json:"target_value"`
	ActualValue     decimal.Decimal `json:"actual_value"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	ProgressRatio   decimal.Decimal `json:"progress_ratio"`
	Exceeded        bool            `json:"exceeded"`
	Status          string          `json:"status"`
}

// DashboardSummary is the payload behind the dashboard view
type DashboardSummary struct {
	Window     ReportingWindow  `json:"window"`
	Totals     AggregatedTotals `json:"totals"`
	TopIncome  []CategoryRollup `json:"top_income"`
	TopExpense []CategoryRollup `json:"top_expense"`
}

// MonthlyReport is the payload behind the reports view
type MonthlyReport struct {
	Window               ReportingWindow  `json:"window"`
	Series               []MonthlyBucket  `json:"series"`
	TopIncomeCategories  []CategoryRollup `json:"top_income_categories"`
	TopExpenseCategories []CategoryRollup `json:"top_expense_categories"`
}
