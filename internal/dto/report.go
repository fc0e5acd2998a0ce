package dto

import (
	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type CategoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type MonthlyBucketResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// DashboardResponse represents the dashboard view
type DashboardResponse struct {
	Window       WindowResponse          `json:"window"`
	TotalIncome  string                  `json:"totalIncome"`
	TotalExpense string                  `json:"totalExpense"`
	Balance      string                  `json:"balance"`
	TopIncome    []CategoryTotalResponse `json:"topIncome"`
	TopExpense   []CategoryTotalResponse `json:"topExpense"`
}

// MonthlyReportResponse represents the trailing monthly series
type MonthlyReportResponse struct {
	Window     WindowResponse          `json:"window"`
	Series     []MonthlyBucketResponse `json:"series"`
	TopIncome  []CategoryTotalResponse `json:"topIncome"`
	TopExpense []CategoryTotalResponse `json:"topExpense"`
}

// CategoryReportResponse ranks every category of one type over a window
type CategoryReportResponse struct {
	Window     WindowResponse          `json:"window"`
	Type       string                  `json:"type"`
	Total      string                  `json:"total"`
	Categories []CategoryTotalResponse `json:"categories"`
}

func NewCategoryTotals(rollups []models.CategoryRollup) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, 0, len(rollups))
	for _, r := range rollups {
		out = append(out, CategoryTotalResponse{
			Category: r.Category,
			Total:    r.Total.StringFixed(2),
		})
	}
	return out
}

func NewDashboardResponse(summary *models.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		Window:       NewWindowResponse(summary.Window),
		TotalIncome:  summary.Totals.TotalIncome.StringFixed(2),
		TotalExpense: summary.Totals.TotalExpense.StringFixed(2),
		Balance:      summary.Totals.Balance.StringFixed(2),
		TopIncome:    NewCategoryTotals(summary.TopIncome),
		TopExpense:   NewCategoryTotals(summary.TopExpense),
	}
}

func NewMonthlyReportResponse(report *models.MonthlyReport) MonthlyReportResponse {
	series := make([]MonthlyBucketResponse, 0, len(report.Series))
	for _, b := range report.Series {
		series = append(series, MonthlyBucketResponse{
			Month:   b.Month,
			Income:  b.Income.StringFixed(2),
			Expense: b.Expense.StringFixed(2),
			Balance: b.Income.Sub(b.Expense).StringFixed(2),
		})
	}

	return MonthlyReportResponse{
		Window:     NewWindowResponse(report.Window),
		Series:     series,
		TopIncome:  NewCategoryTotals(report.TopIncomeCategories),
		TopExpense: NewCategoryTotals(report.TopExpenseCategories),
	}
}

func NewCategoryReportResponse(window models.ReportingWindow, txnType models.TransactionType, rollups []models.CategoryRollup) CategoryReportResponse {
	total := decimal.Zero
	for _, r := range rollups {
		total = total.Add(r.Total)
	}

	return CategoryReportResponse{
		Window:     NewWindowResponse(window),
		Type:       txnType.String(),
		Total:      total.StringFixed(2),
		Categories: NewCategoryTotals(rollups),
	}
}
