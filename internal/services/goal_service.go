package services

import (
	"context"
	"errors"
	"log/slog"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalService struct {
	goalRepo repositories.GoalRepositoryInterface
	metrics  MetricsRecorderInterface
}

func NewGoalService(goalRepo repositories.GoalRepositoryInterface, metrics MetricsRecorderInterface) GoalServiceInterface {
	return &goalService{
		goalRepo: goalRepo,
		metrics:  metrics,
	}
}

func (s *goalService) SetGoal(ctx context.Context, userID uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error) {
	goal, err := s.goalRepo.Upsert(ctx, userID, txnType, category, targetValue)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoOpDeletion):
			s.recordUpsert("noop")
			slog.Warn("goal deletion requested but no goal exists",
				"user_id", userID,
				"type", txnType,
				"category", category,
			)
		case models.IsValidationError(err):
			s.recordUpsert("invalid")
		default:
			s.recordUpsert("error")
			slog.Error("failed to upsert goal",
				"user_id", userID,
				"type", txnType,
				"category", category,
				"error", err,
			)
		}
		return nil, err
	}

	if goal == nil {
		s.recordUpsert("deleted")
		slog.Info("goal deleted by zero target",
			"user_id", userID,
			"type", txnType,
			"category", category,
		)
		return nil, nil
	}

	s.recordUpsert("saved")
	slog.Info("goal saved",
		"user_id", userID,
		"goal_id", goal.ID,
		"type", goal.Type,
		"category", goal.Category,
	)
	return goal, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	return s.goalRepo.GetByID(ctx, userID, id)
}

func (s *goalService) UpdateGoal(ctx context.Context, userID, id uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error) {
	goal, err := s.goalRepo.Update(ctx, userID, id, txnType, category, targetValue)
	if err != nil {
		switch {
		case models.IsValidationError(err):
			s.recordUpsert("invalid")
		case errors.Is(err, repositories.ErrGoalNotFound):
		default:
			s.recordUpsert("error")
			slog.Error("failed to update goal", "user_id", userID, "goal_id", id, "error", err)
		}
		return nil, err
	}

	s.recordUpsert("updated")
	slog.Info("goal updated",
		"user_id", userID,
		"goal_id", goal.ID,
		"type", goal.Type,
		"category", goal.Category,
	)
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		slog.Error("failed to list goals", "user_id", userID, "error", err)
		return nil, err
	}
	return goals, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		if !errors.Is(err, repositories.ErrGoalNotFound) {
			slog.Error("failed to delete goal", "user_id", userID, "goal_id", id, "error", err)
		}
		return err
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", id)
	return nil
}

func (s *goalService) recordUpsert(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(MetricGoalUpsert, map[string]string{"outcome": outcome})
	}
}
