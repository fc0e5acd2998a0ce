package services

import (
	"sort"
	"time"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopCategories = 3
	DefaultMonthsBack    = 12
)

// ComputeTotals sums the values of each type. The input is assumed to be in-window.
func ComputeTotals(txns []models.Transaction) models.AggregatedTotals {
	income := decimal.Zero
	expense := decimal.Zero

	for i := range txns {
		switch txns[i].Type {
		case models.TransactionTypeIncome:
			income = income.Add(txns[i].Value)
		case models.TransactionTypeExpense:
			expense = expense.Add(txns[i].Value)
		}
	}

	return models.AggregatedTotals{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// CategoryTotals groups the transactions of txnType by category and ranks them by total descending.
// Equal totals are ordered by category name. Categories without rows are omitted.
func CategoryTotals(txns []models.Transaction, txnType models.TransactionType) []models.CategoryRollup {
	sums := make(map[string]decimal.Decimal)
	for i := range txns {
		if txns[i].Type != txnType {
			continue
		}
		current, ok := sums[txns[i].Category]
		if !ok {
			current = decimal.Zero
		}
		sums[txns[i].Category] = current.Add(txns[i].Value)
	}

	rollups := make([]models.CategoryRollup, 0, len(sums))
	for category, total := range sums {
		rollups = append(rollups, models.CategoryRollup{Category: category, Total: total})
	}

	sort.Slice(rollups, func(i, j int) bool {
		if cmp := rollups[i].Total.Cmp(rollups[j].Total); cmp != 0 {
			return cmp > 0
		}
		return rollups[i].Category < rollups[j].Category
	})

	return rollups
}

// TopCategories returns at most n rollups of CategoryTotals; n <= 0 selects DefaultTopCategories
func TopCategories(txns []models.Transaction, txnType models.TransactionType, n int) []models.CategoryRollup {
	if n <= 0 {
		n = DefaultTopCategories
	}

	rollups := CategoryTotals(txns, txnType)
	if len(rollups) > n {
		rollups = rollups[:n]
	}
	return rollups
}

// CategorySum is the total of one (type, category) pair
func CategorySum(txns []models.Transaction, txnType models.TransactionType, category string) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		if txns[i].Type == txnType && txns[i].Category == category {
			total = total.Add(txns[i].Value)
		}
	}
	return total
}

// MonthlySeries buckets txns into the monthsBack calendar months ending with the month of now.
// Buckets are oldest first and zero-filled; rows outside the series are ignored.
func MonthlySeries(txns []models.Transaction, monthsBack int, now time.Time) []models.MonthlyBucket {
	if monthsBack <= 0 {
		monthsBack = DefaultMonthsBack
	}

	window := models.TrailingMonthsWindow(now, monthsBack)

	series := make([]models.MonthlyBucket, monthsBack)
	index := make(map[string]int, monthsBack)
	for i := 0; i < monthsBack; i++ {
		key := models.MonthKey(window.Start.AddDate(0, i, 0))
		series[i] = models.MonthlyBucket{
			Month:   key,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		index[key] = i
	}

	for i := range txns {
		pos, ok := index[models.MonthKey(txns[i].Date)]
		if !ok {
			continue
		}
		switch txns[i].Type {
		case models.TransactionTypeIncome:
			series[pos].Income = series[pos].Income.Add(txns[i].Value)
		case models.TransactionTypeExpense:
			series[pos].Expense = series[pos].Expense.Add(txns[i].Value)
		}
	}

	return series
}
