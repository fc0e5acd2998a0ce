package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoal_Validate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		goal    Goal
		wantErr error
	}{
		{
			name: "valid expense ceiling",
			goal: Goal{UserID: userID, Type: TransactionTypeExpense, Category: CategoryFood, TargetValue: decimal.NewFromInt(500)},
		},
		{
			name: "valid income target",
			goal: Goal{UserID: userID, Type: TransactionTypeIncome, Category: CategorySalary, TargetValue: decimal.RequireFromString("4500.50")},
		},
		{
			name:    "missing user",
			goal:    Goal{Type: TransactionTypeExpense, Category: CategoryFood, TargetValue: decimal.NewFromInt(1)},
			wantErr: ErrMissingUser,
		},
		{
			name:    "invalid type",
			goal:    Goal{UserID: userID, Type: "savings", Category: CategoryOther, TargetValue: decimal.NewFromInt(1)},
			wantErr: ErrInvalidTransactionType,
		},
		{
			name:    "category of the other type",
			goal:    Goal{UserID: userID, Type: TransactionTypeIncome, Category: CategoryFood, TargetValue: decimal.NewFromInt(1)},
			wantErr: ErrInvalidCategory,
		},
		{
			name:    "negative target",
			goal:    Goal{UserID: userID, Type: TransactionTypeExpense, Category: CategoryFood, TargetValue: decimal.NewFromInt(-5)},
			wantErr: ErrNegativeValue,
		},
		{
			name:    "sub-cent target",
			goal:    Goal{UserID: userID, Type: TransactionTypeExpense, Category: CategoryFood, TargetValue: decimal.RequireFromString("0.001")},
			wantErr: ErrValuePrecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.goal.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGoal_BeforeCreate(t *testing.T) {
	g := &Goal{UserID: uuid.New(), Type: TransactionTypeExpense, Category: CategoryHousing, TargetValue: decimal.NewFromInt(1200)}

	require.NoError(t, g.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.False(t, g.CreatedAt.IsZero())
	assert.Equal(t, "goals", g.TableName())
}

func TestLedgerFilter_Matches(t *testing.T) {
	txn := &Transaction{Type: TransactionTypeExpense, Category: CategoryFood}

	assert.True(t, LedgerFilter{}.Matches(txn))
	assert.True(t, LedgerFilter{Type: TransactionTypeExpense}.Matches(txn))
	assert.True(t, LedgerFilter{Category: CategoryFood}.Matches(txn))
	assert.True(t, LedgerFilter{Type: TransactionTypeExpense, Category: CategoryFood}.Matches(txn))
	assert.False(t, LedgerFilter{Type: TransactionTypeIncome}.Matches(txn))
	assert.False(t, LedgerFilter{Type: TransactionTypeExpense, Category: CategoryHousing}.Matches(txn))

	assert.True(t, SortDateAsc.IsValid())
	assert.True(t, SortDateDesc.IsValid())
	assert.False(t, SortOrder("sideways").IsValid())
}
