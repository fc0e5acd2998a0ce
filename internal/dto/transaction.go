package dto

import (
	"encoding/json"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

// TransactionRequest is the body of create and full-replace requests.
// Value accepts a JSON number or a numeric string.
type TransactionRequest struct {
	Type        string      `json:"type" validate:"required,transaction_type"`
	Category    string      `json:"category" validate:"required,transaction_category"`
	Value       json.Number `json:"value" validate:"required,money"`
	Date        string      `json:"date" validate:"required,iso_date"`
	Description string      `json:"description" validate:"max=255"`
}

// WindowQuery holds the optional reporting window bounds of read endpoints
type WindowQuery struct {
	StartDate string `query:"start_date" validate:"omitempty,iso_date"`
	EndDate   string `query:"end_date" validate:"omitempty,iso_date"`
}

// LedgerQuery contains filtering and ordering options for the ledger view
type LedgerQuery struct {
	WindowQuery
	Sort     string `query:"sort" validate:"omitempty,sort_order"`
	Type     string `query:"type" validate:"omitempty,transaction_type"`
	Category string `query:"category" validate:"omitempty,transaction_category"`
}

// WindowResponse renders a reporting window as ISO dates
type WindowResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// TransactionResponse represents a stored ledger entry
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Value       string    `json:"value"`
	Date        string    `json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListTransactionsResponse represents the response for the ledger view
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Window       WindowResponse        `json:"window"`
	Sort         string                `json:"sort"`
	Count        int                   `json:"count"`
}

// NewWindowResponse formats w for the wire
func NewWindowResponse(w models.ReportingWindow) WindowResponse {
	return WindowResponse{
		StartDate: w.Start.Format(models.DateLayout),
		EndDate:   w.End.Format(models.DateLayout),
	}
}

// NewTransactionResponse converts a transaction model into its response form
func NewTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Type:        txn.Type.String(),
		Category:    txn.Category,
		Value:       txn.Value.StringFixed(2),
		Date:        txn.Date.Format(models.DateLayout),
		Description: txn.Description,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}
}

// NewTransactionResponses converts a slice of transactions preserving order
func NewTransactionResponses(txns []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, NewTransactionResponse(&txns[i]))
	}
	return out
}
