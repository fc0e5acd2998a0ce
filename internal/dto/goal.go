package dto

import (
	"encoding/json"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// GoalRequest sets the target for one (type, category). A zero target removes the goal.
type GoalRequest struct {
	Type        string      `json:"type" validate:"required,transaction_type"`
	Category    string      `json:"category" validate:"required,transaction_category"`
	TargetValue json.Number `json:"targetValue" validate:"required,money"`
}

type GoalResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	TargetValue string    `json:"targetValue"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalDeletionResponse reports the outcome of a zero-target upsert
type GoalDeletionResponse struct {
	Deleted bool `json:"deleted"`
	NoOp    bool `json:"noop"`
}

type GoalProgressResponse struct {
	GoalID          uuid.UUID `json:"goalId"`
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	TargetValue     string    `json:"targetValue"`
	ActualValue     string    `json:"actualValue"`
	ProgressPercent string    `json:"progressPercent"`
	ProgressRatio   string    `json:"progressRatio"`
	Exceeded        bool      `json:"exceeded"`
	Status          string    `json:"status"`
}

// GoalsViewResponse represents the goals screen for a window
type GoalsViewResponse struct {
	Window WindowResponse         `json:"window"`
	Goals  []GoalProgressResponse `json:"goals"`
}

func NewGoalResponse(goal *models.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		Type:        goal.Type.String(),
		Category:    goal.Category,
		TargetValue: goal.TargetValue.StringFixed(2),
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}
}

func NewGoalResponses(goals []models.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, NewGoalResponse(&goals[i]))
	}
	return out
}

// NewGoalsViewResponse converts progress rows, rendering the percent with one decimal
func NewGoalsViewResponse(window models.ReportingWindow, progress []models.GoalProgress) GoalsViewResponse {
	goals := make([]GoalProgressResponse, 0, len(progress))
	for _, p := range progress {
		goals = append(goals, GoalProgressResponse{
			GoalID:          p.GoalID,
			Type:            p.Type.String(),
			Category:        p.Category,
			TargetValue:     p.TargetValue.StringFixed(2),
			ActualValue:     p.ActualValue.StringFixed(2),
			ProgressPercent: p.ProgressPercent.StringFixed(1),
			ProgressRatio:   p.ProgressRatio.StringFixed(4),
			Exceeded:        p.Exceeded,
			Status:          p.Status,
		})
	}

	return GoalsViewResponse{
		Window: NewWindowResponse(window),
		Goals:  goals,
	}
}
