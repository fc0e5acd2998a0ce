package models

import (
	"strings"
)

// TransactionType is the canonical ledger entry type
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Income categories
const (
	CategorySalary      = "Salary"
	CategoryFreelance   = "Freelance"
	CategoryInvestments = "Investments"
)

// Expense categories
const (
	CategoryHousing        = "Housing"
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryUtilities      = "Utilities"
	CategoryHealth         = "Health"
	CategoryEducation      = "Education"
)

// CategoryOther is valid for both types
const CategoryOther = "Other"

var (
	incomeCategories = []string{
		CategorySalary,
		CategoryFreelance,
		CategoryInvestments,
		CategoryOther,
	}

	expenseCategories = []string{
		CategoryHousing,
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryUtilities,
		CategoryHealth,
		CategoryEducation,
		CategoryOther,
	}

	// typeAliases maps lowercased input spellings to the canonical type.
	// The Portuguese labels are the ones used by the first version of the web client.
	typeAliases = map[string]TransactionType{
		"income":  TransactionTypeIncome,
		"receita": TransactionTypeIncome,
		"expense": TransactionTypeExpense,
		"despesa": TransactionTypeExpense,
	}

	categoryAliases = map[TransactionType]map[string]string{
		TransactionTypeIncome: {
			"salário":       CategorySalary,
			"salario":       CategorySalary,
			"investimentos": CategoryInvestments,
			"outros":        CategoryOther,
		},
		TransactionTypeExpense: {
			"moradia":        CategoryHousing,
			"alimentação":    CategoryFood,
			"alimentacao":    CategoryFood,
			"transporte":     CategoryTransportation,
			"entretenimento": CategoryEntertainment,
			"utilidades":     CategoryUtilities,
			"saúde":          CategoryHealth,
			"saude":          CategoryHealth,
			"educação":       CategoryEducation,
			"educacao":       CategoryEducation,
			"outros":         CategoryOther,
		},
	}
)

// AllTransactionTypes returns the types in display order
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TransactionTypeIncome, TransactionTypeExpense}
}

// IsValid reports whether t is one of the canonical types
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

func (t TransactionType) String() string {
	return string(t)
}

// CategoriesFor returns the ordered category list for a type.
// The returned slice is a copy; nil is returned for an unknown type.
func CategoriesFor(t TransactionType) []string {
	var src []string
	switch t {
	case TransactionTypeIncome:
		src = incomeCategories
	case TransactionTypeExpense:
		src = expenseCategories
	default:
		return nil
	}

	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsValidCategory checks category membership in the fixed list for t
func IsValidCategory(t TransactionType, category string) bool {
	return CategoryRank(t, category) >= 0
}

// CategoryRank returns the position of category within the taxonomy of t, or -1
func CategoryRank(t TransactionType, category string) int {
	var src []string
	switch t {
	case TransactionTypeIncome:
		src = incomeCategories
	case TransactionTypeExpense:
		src = expenseCategories
	default:
		return -1
	}

	for i, c := range src {
		if c == category {
			return i
		}
	}
	return -1
}

// TypeRank orders income before expense
func TypeRank(t TransactionType) int {
	switch t {
	case TransactionTypeIncome:
		return 0
	case TransactionTypeExpense:
		return 1
	default:
		return 2
	}
}

// ParseTransactionType maps an external spelling to the canonical type
func ParseTransactionType(raw string) (TransactionType, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if t, ok := typeAliases[key]; ok {
		return t, nil
	}
	return "", NewValidationError("type", ErrInvalidTransactionType)
}

// CanonicalCategory maps an external category spelling to the canonical name for t.
// Unknown categories fail with ErrInvalidCategory.
func CanonicalCategory(t TransactionType, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	key := strings.ToLower(trimmed)

	var src []string
	switch t {
	case TransactionTypeIncome:
		src = incomeCategories
	case TransactionTypeExpense:
		src = expenseCategories
	default:
		return "", NewValidationError("type", ErrInvalidTransactionType)
	}

	for _, c := range src {
		if strings.ToLower(c) == key {
			return c, nil
		}
	}

	if alias, ok := categoryAliases[t][key]; ok {
		return alias, nil
	}

	return "", NewValidationError("category", ErrInvalidCategory)
}
