package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReportServiceTestSuite struct {
	suite.Suite
	ctrl                *gomock.Controller
	mockTransactionRepo *repository_mocks.MockTransactionRepositoryInterface
	mockGoalRepo        *repository_mocks.MockGoalRepositoryInterface
	metrics             *PrometheusMetrics
	service             ReportServiceInterface
	ctx                 context.Context
	userID              uuid.UUID
	now                 time.Time
	january             models.ReportingWindow
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockTransactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.mockGoalRepo = repository_mocks.NewMockGoalRepositoryInterface(s.ctrl)
	s.metrics = NewPrometheusMetrics(prometheus.NewRegistry()).(*PrometheusMetrics)
	s.now = time.Date(2025, 1, 25, 9, 0, 0, 0, time.UTC)
	s.service = NewReportService(s.mockTransactionRepo, s.mockGoalRepo, s.metrics, ReportSettings{
		Now: func() time.Time { return s.now },
	})
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.january = models.ReportingWindow{Start: date(2025, 1, 1), End: date(2025, 1, 31)}
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) reports(report, status string) float64 {
	return testutil.ToFloat64(s.metrics.reportsGenerated.WithLabelValues(report, status))
}

func (s *ReportServiceTestSuite) TestDefaultWindow() {
	s.Equal(s.january, s.service.DefaultWindow())
}

func (s *ReportServiceTestSuite) TestDashboardSummary() {
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(workedExample(), nil)

	summary, err := s.service.DashboardSummary(s.ctx, s.userID, s.january)

	s.Require().NoError(err)
	s.Equal(s.january, summary.Window)
	assertDecimal(s.T(), "4550", summary.Totals.Balance)
	s.Require().Len(summary.TopIncome, 1)
	s.Require().Len(summary.TopExpense, 2)
	s.Equal(models.CategoryFood, summary.TopExpense[0].Category)
	s.Equal(float64(1), s.reports(reportDashboard, "success"))
}

func (s *ReportServiceTestSuite) TestDashboardSummary_EmptyLedger() {
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(nil, nil)

	summary, err := s.service.DashboardSummary(s.ctx, s.userID, s.january)

	s.Require().NoError(err)
	s.True(summary.Totals.Balance.IsZero())
	s.Empty(summary.TopIncome)
	s.Empty(summary.TopExpense)
}

func (s *ReportServiceTestSuite) TestDashboardSummary_StorageErrorFailsWholeCall() {
	ioErr := errors.New("connection reset")
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(nil, ioErr)

	summary, err := s.service.DashboardSummary(s.ctx, s.userID, s.january)

	s.Nil(summary)
	s.ErrorIs(err, ioErr)
	s.Equal(float64(1), s.reports(reportDashboard, "error"))
}

func (s *ReportServiceTestSuite) TestDashboardSummary_InvalidWindow() {
	inverted := models.ReportingWindow{Start: date(2025, 2, 1), End: date(2025, 1, 1)}

	_, err := s.service.DashboardSummary(s.ctx, s.userID, inverted)

	s.ErrorIs(err, models.ErrInvalidWindow)
}

func (s *ReportServiceTestSuite) TestDashboardSummary_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).
		DoAndReturn(func(context.Context, uuid.UUID, models.ReportingWindow) ([]models.Transaction, error) {
			cancel()
			return workedExample(), nil
		})

	summary, err := s.service.DashboardSummary(ctx, s.userID, s.january)

	s.Nil(summary)
	s.ErrorIs(err, context.Canceled)
}

func (s *ReportServiceTestSuite) TestLedgerView_SortAndFilter() {
	first := txn(models.TransactionTypeExpense, models.CategoryFood, "10", date(2025, 1, 3))
	second := txn(models.TransactionTypeExpense, models.CategoryFood, "20", date(2025, 1, 9))
	third := txn(models.TransactionTypeExpense, models.CategoryHousing, "30", date(2025, 1, 9))
	income := txn(models.TransactionTypeIncome, models.CategorySalary, "5000", date(2025, 1, 1))
	base := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	second.CreatedAt = base
	third.CreatedAt = base.Add(time.Minute)

	all := []models.Transaction{third, income, second, first}
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(all, nil).Times(3)

	asc, err := s.service.LedgerView(s.ctx, s.userID, s.january, models.SortDateAsc, models.LedgerFilter{})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{income.ID, first.ID, second.ID, third.ID}, ids(asc))

	desc, err := s.service.LedgerView(s.ctx, s.userID, s.january, "", models.LedgerFilter{})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{third.ID, second.ID, first.ID, income.ID}, ids(desc))

	food, err := s.service.LedgerView(s.ctx, s.userID, s.january, models.SortDateAsc, models.LedgerFilter{
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryFood,
	})
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{first.ID, second.ID}, ids(food))
}

func (s *ReportServiceTestSuite) TestLedgerView_InvalidInputs() {
	_, err := s.service.LedgerView(s.ctx, s.userID, s.january, "sideways", models.LedgerFilter{})
	s.True(models.IsValidationError(err))

	_, err = s.service.LedgerView(s.ctx, s.userID, s.january, models.SortDateAsc, models.LedgerFilter{Type: "transfer"})
	s.ErrorIs(err, models.ErrInvalidTransactionType)

	_, err = s.service.LedgerView(s.ctx, s.userID, s.january, models.SortDateAsc, models.LedgerFilter{Category: "Crypto"})
	s.ErrorIs(err, models.ErrInvalidCategory)

	_, err = s.service.LedgerView(s.ctx, s.userID, s.january, models.SortDateAsc, models.LedgerFilter{
		Type:     models.TransactionTypeIncome,
		Category: models.CategoryFood,
	})
	s.ErrorIs(err, models.ErrInvalidCategory)
}

func (s *ReportServiceTestSuite) TestGoalsView() {
	food := goal(models.TransactionTypeExpense, models.CategoryFood, "250")
	salary := goal(models.TransactionTypeIncome, models.CategorySalary, "6000")

	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(workedExample(), nil)
	s.mockGoalRepo.EXPECT().ListByUser(gomock.Any(), s.userID).Return([]models.Goal{food, salary}, nil)

	progress, err := s.service.GoalsView(s.ctx, s.userID, s.january)

	s.Require().NoError(err)
	s.Require().Len(progress, 2)
	s.Equal(salary.ID, progress[0].GoalID)
	assertDecimal(s.T(), "83.3", progress[0].ProgressPercent)
	s.Equal(food.ID, progress[1].GoalID)
	assertDecimal(s.T(), "100", progress[1].ProgressPercent)
	s.True(progress[1].Exceeded)
	s.Equal(models.GoalStatusOverBudget, progress[1].Status)
}

func (s *ReportServiceTestSuite) TestGoalsView_GoalStoreFailure() {
	ioErr := errors.New("goal store unavailable")
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(workedExample(), nil).AnyTimes()
	s.mockGoalRepo.EXPECT().ListByUser(gomock.Any(), s.userID).Return(nil, ioErr)

	progress, err := s.service.GoalsView(s.ctx, s.userID, s.january)

	s.Nil(progress)
	s.ErrorIs(err, ioErr)
	s.Equal(float64(1), s.reports(reportGoals, "error"))
}

func (s *ReportServiceTestSuite) TestGoalsView_FirstErrorCancelsSibling() {
	ioErr := errors.New("ledger unavailable")
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(nil, ioErr)
	s.mockGoalRepo.EXPECT().ListByUser(gomock.Any(), s.userID).
		DoAndReturn(func(ctx context.Context, _ uuid.UUID) ([]models.Goal, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
				return nil, errors.New("sibling was not cancelled")
			}
		})

	_, err := s.service.GoalsView(s.ctx, s.userID, s.january)

	s.ErrorIs(err, ioErr)
}

func (s *ReportServiceTestSuite) TestMonthlyReport() {
	window := models.ReportingWindow{Start: date(2024, 11, 1), End: date(2025, 1, 31)}
	txns := []models.Transaction{
		txn(models.TransactionTypeIncome, models.CategorySalary, "5000", date(2024, 11, 5)),
		txn(models.TransactionTypeExpense, models.CategoryFood, "300", date(2024, 12, 10)),
		txn(models.TransactionTypeExpense, models.CategoryHousing, "1500", date(2025, 1, 2)),
	}
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, window).Return(txns, nil)

	report, err := s.service.MonthlyReport(s.ctx, s.userID, 3)

	s.Require().NoError(err)
	s.Equal(window, report.Window)
	s.Require().Len(report.Series, 3)
	s.Equal("2024-11", report.Series[0].Month)
	assertDecimal(s.T(), "5000", report.Series[0].Income)
	assertDecimal(s.T(), "300", report.Series[1].Expense)
	assertDecimal(s.T(), "1500", report.Series[2].Expense)
	s.Equal(models.CategoryHousing, report.TopExpenseCategories[0].Category)
	s.Len(report.TopIncomeCategories, 1)
}

func (s *ReportServiceTestSuite) TestMonthlyReport_DefaultMonths() {
	window := models.TrailingMonthsWindow(s.now, DefaultMonthsBack)
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, window).Return(nil, nil)

	report, err := s.service.MonthlyReport(s.ctx, s.userID, 0)

	s.Require().NoError(err)
	s.Len(report.Series, DefaultMonthsBack)
	s.Equal("2025-01", report.Series[DefaultMonthsBack-1].Month)
}

func (s *ReportServiceTestSuite) TestCategoryReport() {
	txns := append(workedExample(),
		txn(models.TransactionTypeExpense, models.CategoryHealth, "80", date(2025, 1, 15)),
		txn(models.TransactionTypeExpense, models.CategoryEducation, "20", date(2025, 1, 16)),
	)
	s.mockTransactionRepo.EXPECT().ListByWindow(gomock.Any(), s.userID, s.january).Return(txns, nil)

	rollups, err := s.service.CategoryReport(s.ctx, s.userID, s.january, models.TransactionTypeExpense)

	s.Require().NoError(err)
	s.Len(rollups, 4)
	s.Equal(models.CategoryEducation, rollups[3].Category)
}

func (s *ReportServiceTestSuite) TestCategoryReport_InvalidType() {
	_, err := s.service.CategoryReport(s.ctx, s.userID, s.january, "transfer")
	s.ErrorIs(err, models.ErrInvalidTransactionType)
}

func ids(txns []models.Transaction) []uuid.UUID {
	out := make([]uuid.UUID, len(txns))
	for i := range txns {
		out[i] = txns[i].ID
	}
	return out
}

// Exercises the assembler against real gorm adapters on SQLite, including the concurrent fetch
func TestReportService_WithSQLiteStores(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.CleanupTestDB(t, db)

	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 1, 25, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	txnRepo := repositories.NewTransactionRepository(db.DB)
	goalRepo := repositories.NewGoalRepository(db.DB)
	metrics := NewPrometheusMetrics(prometheus.NewRegistry())

	ledger := NewTransactionService(txnRepo, metrics, clock)
	goals := NewGoalService(goalRepo, metrics)
	reports := NewReportService(txnRepo, goalRepo, metrics, ReportSettings{Now: clock})

	for _, in := range []TransactionInput{
		{Type: models.TransactionTypeIncome, Category: models.CategorySalary, Value: decimal.NewFromInt(5000), Date: date(2025, 1, 5)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryFood, Value: decimal.NewFromInt(300), Date: date(2025, 1, 10)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryTransportation, Value: decimal.NewFromInt(150), Date: date(2025, 1, 12)},
		{Type: models.TransactionTypeExpense, Category: models.CategoryFood, Value: decimal.NewFromInt(99), Date: date(2024, 12, 31)},
	} {
		_, err := ledger.CreateTransaction(ctx, userID, in)
		require.NoError(t, err)
	}

	_, err := goals.SetGoal(ctx, userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(250))
	require.NoError(t, err)

	window := reports.DefaultWindow()

	summary, err := reports.DashboardSummary(ctx, userID, window)
	require.NoError(t, err)
	assertDecimal(t, "5000", summary.Totals.TotalIncome)
	assertDecimal(t, "450", summary.Totals.TotalExpense)
	assertDecimal(t, "4550", summary.Totals.Balance)

	progress, err := reports.GoalsView(ctx, userID, window)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assertDecimal(t, "300", progress[0].ActualValue)
	assertDecimal(t, "100", progress[0].ProgressPercent)
	assert.True(t, progress[0].Exceeded)

	monthly, err := reports.MonthlyReport(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, monthly.Series, 2)
	assertDecimal(t, "99", monthly.Series[0].Expense)
	assertDecimal(t, "450", monthly.Series[1].Expense)
}
