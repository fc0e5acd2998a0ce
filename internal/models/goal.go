package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a per-category target. A user holds at most one goal per (type, category).
type Goal struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_goals_user_type_category" json:"user_id"`
	Type        TransactionType `gorm:"type:varchar(20);not null;uniqueIndex:idx_goals_user_type_category" json:"type"`
	Category    string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_goals_user_type_category" json:"category"`
	TargetValue decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_value"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Goal
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}

	return g.Validate()
}

// Validate checks the goal identity triple and target
func (g *Goal) Validate() error {
	if g.UserID == uuid.Nil {
		return NewValidationError("user_id", ErrMissingUser)
	}

	if !g.Type.IsValid() {
		return NewValidationError("type", ErrInvalidTransactionType)
	}

	if !IsValidCategory(g.Type, g.Category) {
		return NewValidationError("category", ErrInvalidCategory)
	}

	return ValidateMoney("target_value", g.TargetValue)
}

// TableName returns the table name for Goal
func (g *Goal) TableName() string {
	return "goals"
}
