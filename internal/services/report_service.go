package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	reportDashboard  = "dashboard"
	reportLedger     = "ledger"
	reportGoals      = "goals"
	reportMonthly    = "monthly"
	reportCategories = "categories"
)

// ReportSettings holds the defaults of the report assembler
type ReportSettings struct {
	TopCategories int
	MonthsBack    int
	Now           func() time.Time
}

type reportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	goalRepo        repositories.GoalRepositoryInterface
	metrics         MetricsRecorderInterface
	topCategories   int
	monthsBack      int
	now             func() time.Time
}

func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	goalRepo repositories.GoalRepositoryInterface,
	metrics MetricsRecorderInterface,
	settings ReportSettings,
) ReportServiceInterface {
	s := &reportService{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		metrics:         metrics,
		topCategories:   settings.TopCategories,
		monthsBack:      settings.MonthsBack,
		now:             settings.Now,
	}
	if s.topCategories <= 0 {
		s.topCategories = DefaultTopCategories
	}
	if s.monthsBack <= 0 {
		s.monthsBack = DefaultMonthsBack
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// DefaultWindow is the calendar month containing the current time
func (s *reportService) DefaultWindow() models.ReportingWindow {
	return models.DefaultWindow(s.now().UTC())
}

func (s *reportService) DashboardSummary(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) (*models.DashboardSummary, error) {
	start := time.Now()

	txns, err := s.fetchTransactions(ctx, userID, window)
	if err != nil {
		s.recordReport(reportDashboard, start, 0, err)
		return nil, err
	}

	summary := &models.DashboardSummary{
		Window:     window,
		Totals:     ComputeTotals(txns),
		TopIncome:  TopCategories(txns, models.TransactionTypeIncome, s.topCategories),
		TopExpense: TopCategories(txns, models.TransactionTypeExpense, s.topCategories),
	}

	s.recordReport(reportDashboard, start, len(txns), nil)
	return summary, nil
}

func (s *reportService) LedgerView(ctx context.Context, userID uuid.UUID, window models.ReportingWindow, order models.SortOrder, filter models.LedgerFilter) ([]models.Transaction, error) {
	start := time.Now()

	if order == "" {
		order = models.SortDateDesc
	}
	if !order.IsValid() {
		return nil, models.NewValidationError("sort", fmt.Errorf("unknown sort order %q", order))
	}
	if err := validateLedgerFilter(filter); err != nil {
		return nil, err
	}

	txns, err := s.fetchTransactions(ctx, userID, window)
	if err != nil {
		s.recordReport(reportLedger, start, 0, err)
		return nil, err
	}

	view := make([]models.Transaction, 0, len(txns))
	for i := range txns {
		if filter.Matches(&txns[i]) {
			view = append(view, txns[i])
		}
	}

	sortLedger(view, order)

	s.recordReport(reportLedger, start, len(txns), nil)
	return view, nil
}

func (s *reportService) GoalsView(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) ([]models.GoalProgress, error) {
	start := time.Now()

	if err := window.Validate(); err != nil {
		return nil, err
	}

	var (
		txns  []models.Transaction
		goals []models.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txns, err = s.transactionRepo.ListByWindow(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.goalRepo.ListByUser(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		s.recordReport(reportGoals, start, 0, err)
		slog.Error("failed to assemble goals view", "user_id", userID, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.recordReport(reportGoals, start, 0, err)
		return nil, err
	}

	progress := CalculateGoalProgress(goals, txns)

	s.recordReport(reportGoals, start, len(txns), nil)
	return progress, nil
}

func (s *reportService) MonthlyReport(ctx context.Context, userID uuid.UUID, monthsBack int) (*models.MonthlyReport, error) {
	start := time.Now()

	if monthsBack <= 0 {
		monthsBack = s.monthsBack
	}

	now := s.now().UTC()
	window := models.TrailingMonthsWindow(now, monthsBack)

	txns, err := s.fetchTransactions(ctx, userID, window)
	if err != nil {
		s.recordReport(reportMonthly, start, 0, err)
		return nil, err
	}

	report := &models.MonthlyReport{
		Window:               window,
		Series:               MonthlySeries(txns, monthsBack, now),
		TopIncomeCategories:  TopCategories(txns, models.TransactionTypeIncome, s.topCategories),
		TopExpenseCategories: TopCategories(txns, models.TransactionTypeExpense, s.topCategories),
	}

	s.recordReport(reportMonthly, start, len(txns), nil)
	return report, nil
}

func (s *reportService) CategoryReport(ctx context.Context, userID uuid.UUID, window models.ReportingWindow, txnType models.TransactionType) ([]models.CategoryRollup, error) {
	start := time.Now()

	if !txnType.IsValid() {
		return nil, models.NewValidationError("type", models.ErrInvalidTransactionType)
	}

	txns, err := s.fetchTransactions(ctx, userID, window)
	if err != nil {
		s.recordReport(reportCategories, start, 0, err)
		return nil, err
	}

	rollups := CategoryTotals(txns, txnType)

	s.recordReport(reportCategories, start, len(txns), nil)
	return rollups, nil
}

// fetchTransactions loads the window and never returns a partial result on cancellation
func (s *reportService) fetchTransactions(ctx context.Context, userID uuid.UUID, window models.ReportingWindow) ([]models.Transaction, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListByWindow(ctx, userID, window)
	if err != nil {
		if !models.IsValidationError(err) {
			slog.Error("failed to load transactions for report",
				"user_id", userID,
				"start", window.Start.Format(models.DateLayout),
				"end", window.End.Format(models.DateLayout),
				"error", err,
			)
		}
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return txns, nil
}

func (s *reportService) recordReport(report string, start time.Time, scanned int, err error) {
	if s.metrics == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{
		"report": report,
		"status": status,
	})
	s.metrics.RecordProcessingTime(MetricReportDuration+"."+report, time.Since(start))
	if err == nil {
		s.metrics.RecordGauge(MetricReportTransactions, float64(scanned), map[string]string{"report": report})
	}
}

func validateLedgerFilter(filter models.LedgerFilter) error {
	if filter.Type != "" && !filter.Type.IsValid() {
		return models.NewValidationError("type", models.ErrInvalidTransactionType)
	}
	if filter.Category == "" {
		return nil
	}

	if filter.Type != "" {
		if !models.IsValidCategory(filter.Type, filter.Category) {
			return models.NewValidationError("category", models.ErrInvalidCategory)
		}
		return nil
	}

	for _, t := range models.AllTransactionTypes() {
		if models.IsValidCategory(t, filter.Category) {
			return nil
		}
	}
	return models.NewValidationError("category", models.ErrInvalidCategory)
}

// sortLedger orders by date, then creation time, then id. Descending is the exact reverse of ascending.
func sortLedger(txns []models.Transaction, order models.SortOrder) {
	less := func(a, b *models.Transaction) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	}

	sort.SliceStable(txns, func(i, j int) bool {
		if order == models.SortDateAsc {
			return less(&txns[i], &txns[j])
		}
		return less(&txns[j], &txns[i])
	})
}
