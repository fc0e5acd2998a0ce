package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesFor(t *testing.T) {
	assert.Equal(t, []string{"Salary", "Freelance", "Investments", "Other"}, CategoriesFor(TransactionTypeIncome))
	assert.Equal(t,
		[]string{"Housing", "Food", "Transportation", "Entertainment", "Utilities", "Health", "Education", "Other"},
		CategoriesFor(TransactionTypeExpense),
	)
	assert.Nil(t, CategoriesFor("transfer"))
}

func TestCategoriesFor_ReturnsCopy(t *testing.T) {
	cats := CategoriesFor(TransactionTypeIncome)
	cats[0] = "Mutated"

	assert.Equal(t, CategorySalary, CategoriesFor(TransactionTypeIncome)[0])
}

func TestIsValidCategory(t *testing.T) {
	tests := []struct {
		txnType  TransactionType
		category string
		want     bool
	}{
		{TransactionTypeIncome, CategorySalary, true},
		{TransactionTypeIncome, CategoryOther, true},
		{TransactionTypeIncome, CategoryFood, false},
		{TransactionTypeExpense, CategoryFood, true},
		{TransactionTypeExpense, CategoryOther, true},
		{TransactionTypeExpense, CategorySalary, false},
		{TransactionTypeExpense, "food", false},
		{"transfer", CategoryOther, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.txnType)+"/"+tt.category, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCategory(tt.txnType, tt.category))
		})
	}
}

func TestCategoryRank(t *testing.T) {
	assert.Equal(t, 0, CategoryRank(TransactionTypeIncome, CategorySalary))
	assert.Equal(t, 3, CategoryRank(TransactionTypeIncome, CategoryOther))
	assert.Equal(t, 7, CategoryRank(TransactionTypeExpense, CategoryOther))
	assert.Equal(t, -1, CategoryRank(TransactionTypeExpense, "Crypto"))
	assert.Equal(t, -1, CategoryRank("", CategoryOther))
}

func TestTypeRank(t *testing.T) {
	assert.Less(t, TypeRank(TransactionTypeIncome), TypeRank(TransactionTypeExpense))
	assert.Equal(t, []TransactionType{TransactionTypeIncome, TransactionTypeExpense}, AllTransactionTypes())
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		raw  string
		want TransactionType
	}{
		{"income", TransactionTypeIncome},
		{"INCOME", TransactionTypeIncome},
		{" Receita ", TransactionTypeIncome},
		{"expense", TransactionTypeExpense},
		{"despesa", TransactionTypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTransactionType(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTransactionType("transfer")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)

	_, err = ParseTransactionType("")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		name    string
		txnType TransactionType
		raw     string
		want    string
	}{
		{"canonical", TransactionTypeExpense, "Food", CategoryFood},
		{"case insensitive", TransactionTypeExpense, "food", CategoryFood},
		{"alias", TransactionTypeExpense, "Alimentação", CategoryFood},
		{"alias without accents", TransactionTypeExpense, "saude", CategoryHealth},
		{"income alias", TransactionTypeIncome, "Salário", CategorySalary},
		{"shared other alias", TransactionTypeIncome, "Outros", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalCategory(tt.txnType, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalCategory_Errors(t *testing.T) {
	_, err := CanonicalCategory(TransactionTypeExpense, "Crypto")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = CanonicalCategory(TransactionTypeIncome, "Moradia")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = CanonicalCategory("transfer", "Other")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}
