package models

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxDescriptionLength = 255

// Transaction is a single ledger entry owned by one user
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"type:varchar(20);not null;index" json:"type"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Value       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"value"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Description string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	t.Date = DateOf(t.Date)

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.Date = DateOf(t.Date)
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate checks the write-time invariants of a transaction
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return NewValidationError("user_id", ErrMissingUser)
	}

	if !t.Type.IsValid() {
		return NewValidationError("type", ErrInvalidTransactionType)
	}

	if !IsValidCategory(t.Type, t.Category) {
		return NewValidationError("category", ErrInvalidCategory)
	}

	if err := ValidateMoney("value", t.Value); err != nil {
		return err
	}

	if t.Date.IsZero() {
		return NewValidationError("date", ErrMissingDate)
	}

	if utf8.RuneCountInString(t.Description) > maxDescriptionLength {
		return NewValidationError("description", ErrDescriptionTooLong)
	}

	return nil
}

// IsIncome returns true for income entries
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true for expense entries
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// ReplaceWith copies the user-editable fields of other onto t
func (t *Transaction) ReplaceWith(other *Transaction) {
	t.Type = other.Type
	t.Category = other.Category
	t.Value = other.Value
	t.Date = DateOf(other.Date)
	t.Description = other.Description
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// ValidateMoney rejects negative amounts and amounts with sub-cent precision
func ValidateMoney(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return NewValidationError(field, ErrNegativeValue)
	}
	if !value.Equal(value.Round(2)) {
		return NewValidationError(field, ErrValuePrecision)
	}
	return nil
}
