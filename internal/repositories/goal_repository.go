package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrNoOpDeletion = errors.New("no goal to delete")
)

// goalRepository implements GoalRepositoryInterface
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepositoryInterface {
	return &goalRepository{
		db: db,
	}
}

// Upsert sets the target for (userID, txnType, category).
// A zero target deletes the existing goal and returns nil; with no goal present it fails with ErrNoOpDeletion.
// Concurrent callers resolve as last write wins.
func (r *goalRepository) Upsert(ctx context.Context, userID uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error) {
	candidate := &models.Goal{
		UserID:      userID,
		Type:        txnType,
		Category:    category,
		TargetValue: targetValue,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	var result *models.Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Goal
		err := tx.Where("user_id = ? AND type = ? AND category = ?", userID, txnType, category).
			First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up goal: %w", err)
		}

		switch {
		case found && targetValue.IsZero():
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to delete goal: %w", err)
			}
			result = nil
			return nil

		case found:
			now := time.Now().UTC()
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"target_value": targetValue,
				"updated_at":   now,
			}).Error; err != nil {
				return fmt.Errorf("failed to update goal: %w", err)
			}
			existing.TargetValue = targetValue
			existing.UpdatedAt = now
			result = &existing
			return nil

		case targetValue.IsZero():
			return ErrNoOpDeletion
		}

		// a racing insert for the same triple turns into an update of its target
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_value", "updated_at"}),
		}).Create(candidate).Error; err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}

		var stored models.Goal
		if err := tx.Where("user_id = ? AND type = ? AND category = ?", userID, txnType, category).
			First(&stored).Error; err != nil {
			return fmt.Errorf("failed to reload goal: %w", err)
		}
		result = &stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByID retrieves a goal owned by userID
func (r *goalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// Update edits the goal id owned by userID in place.
// A zero target is rejected; removal by target goes through Upsert.
// Moving onto a (type, category) held by another goal of the user fails with ErrDuplicateGoal.
func (r *goalRepository) Update(ctx context.Context, userID, id uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error) {
	candidate := &models.Goal{
		UserID:      userID,
		Type:        txnType,
		Category:    category,
		TargetValue: targetValue,
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if targetValue.IsZero() {
		return nil, models.NewValidationError("target_value", models.ErrZeroTargetUpdate)
	}

	var updated models.Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGoalNotFound
			}
			return fmt.Errorf("failed to look up goal: %w", err)
		}

		var clashes int64
		if err := tx.Model(&models.Goal{}).
			Where("user_id = ? AND type = ? AND category = ? AND id <> ?", userID, txnType, category, id).
			Count(&clashes).Error; err != nil {
			return fmt.Errorf("failed to check goal uniqueness: %w", err)
		}
		if clashes > 0 {
			return models.NewValidationError("category", models.ErrDuplicateGoal)
		}

		now := time.Now().UTC()
		if err := tx.Model(&updated).Updates(map[string]interface{}{
			"type":         txnType,
			"category":     category,
			"target_value": targetValue,
			"updated_at":   now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		updated.Type = txnType
		updated.Category = category
		updated.TargetValue = targetValue
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// ListByUser returns every goal of the user
func (r *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("type ASC").
		Order("category ASC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// Delete removes a goal owned by userID
func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Goal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
