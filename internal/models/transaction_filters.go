package models

// SortOrder controls the date ordering of the ledger view
type SortOrder string

const (
	SortDateAsc  SortOrder = "asc"
	SortDateDesc SortOrder = "desc"
)

// IsValid reports whether s is a known order
func (s SortOrder) IsValid() bool {
	return s == SortDateAsc || s == SortDateDesc
}

// LedgerFilter narrows the ledger view. Empty fields match everything; set fields are AND-combined.
type LedgerFilter struct {
	Type     TransactionType
	Category string
}

// Matches reports whether txn passes the filter
func (f LedgerFilter) Matches(txn *Transaction) bool {
	if f.Type != "" && txn.Type != f.Type {
		return false
	}
	if f.Category != "" && txn.Category != f.Category {
		return false
	}
	return true
}
