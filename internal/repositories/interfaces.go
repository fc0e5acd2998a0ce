package repositories

import (
	"context"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryInterface defines the contract for ledger storage.
// Every operation is scoped to the owning user.
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	ListByWindow(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) ([]models.Transaction, error)
	Update(ctx context.Context, userID, id uuid.UUID, replacement *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// GoalRepositoryInterface defines the contract for goal storage
type GoalRepositoryInterface interface {
	Upsert(ctx context.Context, userID uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
