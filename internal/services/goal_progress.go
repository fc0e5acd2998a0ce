package services

import (
	"sort"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred        = decimal.NewFromInt(100)
	ratioPrecision = int32(4)
)

// CalculateGoalProgress joins each goal with the actual value of its (type, category) in txns.
// The result is grouped by type, income first, and follows taxonomy order inside each group.
func CalculateGoalProgress(goals []models.Goal, txns []models.Transaction) []models.GoalProgress {
	progress := make([]models.GoalProgress, 0, len(goals))
	for i := range goals {
		actual := CategorySum(txns, goals[i].Type, goals[i].Category)
		progress = append(progress, ProgressFor(goals[i], actual))
	}

	sort.SliceStable(progress, func(i, j int) bool {
		ti, tj := models.TypeRank(progress[i].Type), models.TypeRank(progress[j].Type)
		if ti != tj {
			return ti < tj
		}
		return models.CategoryRank(progress[i].Type, progress[i].Category) < models.CategoryRank(progress[j].Type, progress[j].Category)
	})

	return progress
}

// ProgressFor computes the progress of a single goal given its actual value.
// The percentage is capped at 100 and rounded to one decimal; the ratio is not capped.
func ProgressFor(goal models.Goal, actual decimal.Decimal) models.GoalProgress {
	percent := decimal.Zero
	ratio := decimal.Zero

	if goal.TargetValue.IsPositive() {
		ratio = actual.Div(goal.TargetValue)
		percent = decimal.Min(hundred, ratio.Mul(hundred).Round(1))
		ratio = ratio.Round(ratioPrecision)
	}

	exceeded := actual.GreaterThan(goal.TargetValue)

	status := models.GoalStatusOnTrack
	if exceeded {
		if goal.Type == models.TransactionTypeExpense {
			status = models.GoalStatusOverBudget
		} else {
			status = models.GoalStatusExceededTarget
		}
	}

	return models.GoalProgress{
		GoalID:          goal.ID,
		Type:            goal.Type,
		Category:        goal.Category,
		TargetValue:     goal.TargetValue,
		ActualValue:     actual,
		ProgressPercent: percent,
		ProgressRatio:   ratio,
		Exceeded:        exceeded,
		Status:          status,
	}
}
