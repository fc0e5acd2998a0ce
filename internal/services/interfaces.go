package services

import (
	"context"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionServiceInterface validates and applies ledger mutations.
// Every mutation returns the stored entity; callers re-aggregate when they need fresh totals.
type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, input TransactionInput) (*models.Transaction, error)
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id uuid.UUID, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

// GoalServiceInterface manages per-category goals
type GoalServiceInterface interface {
	// SetGoal upserts the goal for (type, category). A zero target deletes it and returns nil.
	SetGoal(ctx context.Context, userID uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	// UpdateGoal edits a goal by id. The target must be positive.
	UpdateGoal(ctx context.Context, userID, id uuid.UUID, txnType models.TransactionType, category string, targetValue decimal.Decimal) (*models.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

// ReportServiceInterface assembles read models over a reporting window
type ReportServiceInterface interface {
	DefaultWindow() models.ReportingWindow
	DashboardSummary(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) (*models.DashboardSummary, error)
	LedgerView(ctx context.Context, userID uuid.UUID, window models.ReportingWindow, order models.SortOrder, filter models.LedgerFilter) ([]models.Transaction, error)
	GoalsView(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) ([]models.GoalProgress, error)
	MonthlyReport(ctx context.Context, userID uuid.UUID, monthsBack int) (*models.MonthlyReport, error)
	CategoryReport(ctx context.Context, userID uuid.UUID, window models.ReportingWindow, txnType models.TransactionType) ([]models.CategoryRollup, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
