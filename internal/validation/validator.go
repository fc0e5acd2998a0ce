package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"finance-tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with the ledger's custom rules
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("iso_date", validateISODate)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
	_ = v.RegisterValidation("sort_order", validateSortOrder)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s against its struct tags
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// validateMoney accepts a decimal string that is non-negative with at most 2 decimal places
func validateMoney(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}

	return models.ValidateMoney(fl.FieldName(), value) == nil
}

// validateISODate accepts YYYY-MM-DD calendar dates
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}

// validateTransactionType accepts the canonical types and their aliases
func validateTransactionType(fl validator.FieldLevel) bool {
	_, err := models.ParseTransactionType(fl.Field().String())
	return err == nil
}

// validateTransactionCategory accepts a category known to at least one type.
// Whether it fits the entry's type is checked by the model.
func validateTransactionCategory(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	for _, t := range models.AllTransactionTypes() {
		if _, err := models.CanonicalCategory(t, raw); err == nil {
			return true
		}
	}
	return false
}

func validateSortOrder(fl validator.FieldLevel) bool {
	return models.SortOrder(strings.ToLower(fl.Field().String())).IsValid()
}
