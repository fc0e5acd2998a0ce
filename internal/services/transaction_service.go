package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInput carries the user-editable fields of a transaction in canonical form
type TransactionInput struct {
	Type        models.TransactionType
	Category    string
	Value       decimal.Decimal
	Date        time.Time
	Description string
}

type transactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	now             func() time.Time
}

// NewTransactionService creates the ledger mutation service. A nil now uses time.Now.
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	now func() time.Time,
) TransactionServiceInterface {
	if now == nil {
		now = time.Now
	}
	return &transactionService{
		transactionRepo: transactionRepo,
		metrics:         metrics,
		now:             now,
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input TransactionInput) (*models.Transaction, error) {
	transaction := &models.Transaction{
		UserID:      userID,
		Type:        input.Type,
		Category:    input.Category,
		Value:       input.Value,
		Date:        models.DateOf(input.Date),
		Description: input.Description,
	}

	if err := s.validate(transaction); err != nil {
		s.recordMutation("create", err)
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		s.recordMutation("create", err)
		if !models.IsValidationError(err) {
			slog.Error("failed to create transaction",
				"user_id", userID,
				"error", err,
			)
		}
		return nil, err
	}

	s.recordMutation("create", nil)
	slog.Info("transaction created",
		"user_id", userID,
		"transaction_id", transaction.ID,
		"type", transaction.Type,
		"category", transaction.Category,
	)

	return transaction, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error) {
	return s.transactionRepo.GetByID(ctx, userID, id)
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, input TransactionInput) (*models.Transaction, error) {
	replacement := &models.Transaction{
		ID:          id,
		UserID:      userID,
		Type:        input.Type,
		Category:    input.Category,
		Value:       input.Value,
		Date:        models.DateOf(input.Date),
		Description: input.Description,
	}

	if err := s.validate(replacement); err != nil {
		s.recordMutation("update", err)
		return nil, err
	}

	updated, err := s.transactionRepo.Update(ctx, userID, id, replacement)
	if err != nil {
		s.recordMutation("update", err)
		if !errors.Is(err, repositories.ErrTransactionNotFound) && !models.IsValidationError(err) {
			slog.Error("failed to update transaction",
				"user_id", userID,
				"transaction_id", id,
				"error", err,
			)
		}
		return nil, err
	}

	s.recordMutation("update", nil)
	slog.Info("transaction updated",
		"user_id", userID,
		"transaction_id", id,
	)

	return updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.transactionRepo.Delete(ctx, userID, id); err != nil {
		s.recordMutation("delete", err)
		if !errors.Is(err, repositories.ErrTransactionNotFound) {
			slog.Error("failed to delete transaction",
				"user_id", userID,
				"transaction_id", id,
				"error", err,
			)
		}
		return err
	}

	s.recordMutation("delete", nil)
	slog.Info("transaction deleted",
		"user_id", userID,
		"transaction_id", id,
	)
	return nil
}

// validate applies the model invariants plus the rule that entries cannot be dated in the future
func (s *transactionService) validate(transaction *models.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}

	today := models.DateOf(s.now().UTC())
	if transaction.Date.After(today) {
		return models.NewValidationError("date", models.ErrFutureDate)
	}
	return nil
}

func (s *transactionService) recordMutation(operation string, err error) {
	if s.metrics == nil {
		return
	}

	status := "success"
	switch {
	case err == nil:
	case models.IsValidationError(err):
		status = "invalid"
	case errors.Is(err, repositories.ErrTransactionNotFound):
		status = "not_found"
	default:
		status = "error"
	}

	s.metrics.IncrementCounter(MetricLedgerMutation, map[string]string{
		"operation": operation,
		"status":    status,
	})
}
