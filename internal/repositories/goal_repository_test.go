package repositories

import (
	"context"
	"errors"
	"testing"

	"finance-tracker/internal/database"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// GoalRepositorySuite defines the test suite for GoalRepository
type GoalRepositorySuite struct {
	suite.Suite
	db     *database.DB
	repo   GoalRepositoryInterface
	ctx    context.Context
	userID uuid.UUID
}

func (s *GoalRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewGoalRepository(s.db.DB)
	s.ctx = context.Background()
	s.userID = uuid.New()
}

func (s *GoalRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestGoalRepositorySuite(t *testing.T) {
	suite.Run(t, new(GoalRepositorySuite))
}

func (s *GoalRepositorySuite) countGoals() int64 {
	var count int64
	s.Require().NoError(s.db.Model(&models.Goal{}).Count(&count).Error)
	return count
}

func (s *GoalRepositorySuite) TestUpsert_Create() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)
	s.Require().NotNil(goal)
	s.NotEqual(uuid.Nil, goal.ID)
	s.Equal(s.userID, goal.UserID)
	s.True(decimal.NewFromInt(500).Equal(goal.TargetValue))
	s.EqualValues(1, s.countGoals())
}

func (s *GoalRepositorySuite) TestUpsert_ReplacesTargetInPlace() {
	first, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	second, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(650))
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.True(decimal.NewFromInt(650).Equal(second.TargetValue))
	s.EqualValues(1, s.countGoals())

	stored, err := s.repo.GetByID(s.ctx, s.userID, first.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(650).Equal(stored.TargetValue))
}

func (s *GoalRepositorySuite) TestUpsert_Idempotent() {
	first, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeIncome, models.CategorySalary, decimal.NewFromInt(4000))
	s.Require().NoError(err)
	second, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeIncome, models.CategorySalary, decimal.NewFromInt(4000))
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.EqualValues(1, s.countGoals())
}

func (s *GoalRepositorySuite) TestUpsert_ZeroDeletesThenNoOp() {
	_, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	deleted, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.Zero)
	s.NoError(err)
	s.Nil(deleted)
	s.Zero(s.countGoals())

	again, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.Zero)
	s.ErrorIs(err, ErrNoOpDeletion)
	s.Nil(again)
}

func (s *GoalRepositorySuite) TestUpsert_SameCategoryDifferentTypes() {
	_, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeIncome, models.CategoryOther, decimal.NewFromInt(100))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryOther, decimal.NewFromInt(200))
	s.Require().NoError(err)

	s.EqualValues(2, s.countGoals())
}

func (s *GoalRepositorySuite) TestUpsert_Invalid() {
	_, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, "Crypto", decimal.NewFromInt(100))
	s.ErrorIs(err, models.ErrInvalidCategory)

	_, err = s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(-100))
	s.ErrorIs(err, models.ErrNegativeValue)

	s.Zero(s.countGoals())
}

func (s *GoalRepositorySuite) TestUpsert_IsolatedPerUser() {
	mine, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(100))
	s.Require().NoError(err)
	theirs, err := s.repo.Upsert(s.ctx, uuid.New(), models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(300))
	s.Require().NoError(err)

	s.NotEqual(mine.ID, theirs.ID)

	goals, err := s.repo.ListByUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(goals, 1)
	s.Equal(mine.ID, goals[0].ID)
}

func (s *GoalRepositorySuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(s.ctx, s.userID, uuid.New())
	s.ErrorIs(err, ErrGoalNotFound)
}

func (s *GoalRepositorySuite) TestDelete() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryHousing, decimal.NewFromInt(1200))
	s.Require().NoError(err)

	s.ErrorIs(s.repo.Delete(s.ctx, uuid.New(), goal.ID), ErrGoalNotFound)
	s.NoError(s.repo.Delete(s.ctx, s.userID, goal.ID))
	s.ErrorIs(s.repo.Delete(s.ctx, s.userID, goal.ID), ErrGoalNotFound)
}

func (s *GoalRepositorySuite) TestUpdate_EditsInPlace() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeExpense, models.CategoryEntertainment, decimal.RequireFromString("320.50"))
	s.Require().NoError(err)
	s.Equal(goal.ID, updated.ID)
	s.Equal(models.CategoryEntertainment, updated.Category)
	s.True(decimal.RequireFromString("320.50").Equal(updated.TargetValue))

	stored, err := s.repo.GetByID(s.ctx, s.userID, goal.ID)
	s.Require().NoError(err)
	s.Equal(models.TransactionTypeExpense, stored.Type)
	s.Equal(models.CategoryEntertainment, stored.Category)
	s.True(decimal.RequireFromString("320.50").Equal(stored.TargetValue))
	s.EqualValues(1, s.countGoals())
}

func (s *GoalRepositorySuite) TestUpdate_ChangesType() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryOther, decimal.NewFromInt(100))
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeIncome, models.CategorySalary, decimal.NewFromInt(4000))
	s.Require().NoError(err)
	s.Equal(models.TransactionTypeIncome, updated.Type)
	s.Equal(models.CategorySalary, updated.Category)
}

func (s *GoalRepositorySuite) TestUpdate_NotFound() {
	_, err := s.repo.Update(s.ctx, s.userID, uuid.New(), models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(10))
	s.ErrorIs(err, ErrGoalNotFound)

	theirs, err := s.repo.Upsert(s.ctx, uuid.New(), models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(10))
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, s.userID, theirs.ID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(99))
	s.ErrorIs(err, ErrGoalNotFound)
}

func (s *GoalRepositorySuite) TestUpdate_CollidesWithAnotherGoal() {
	food, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryHousing, decimal.NewFromInt(1200))
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, s.userID, food.ID, models.TransactionTypeExpense, models.CategoryHousing, decimal.NewFromInt(700))
	s.ErrorIs(err, models.ErrDuplicateGoal)
	s.True(models.IsValidationError(err))

	stored, err := s.repo.GetByID(s.ctx, s.userID, food.ID)
	s.Require().NoError(err)
	s.Equal(models.CategoryFood, stored.Category)
	s.True(decimal.NewFromInt(500).Equal(stored.TargetValue))
}

func (s *GoalRepositorySuite) TestUpdate_SameTripleOnlyChangesTarget() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	updated, err := s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(650))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(650).Equal(updated.TargetValue))
}

func (s *GoalRepositorySuite) TestUpdate_RejectsZeroAndInvalidTargets() {
	goal, err := s.repo.Upsert(s.ctx, s.userID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(500))
	s.Require().NoError(err)

	_, err = s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeExpense, models.CategoryFood, decimal.Zero)
	s.ErrorIs(err, models.ErrZeroTargetUpdate)

	_, err = s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(-5))
	s.ErrorIs(err, models.ErrNegativeValue)

	_, err = s.repo.Update(s.ctx, s.userID, goal.ID, models.TransactionTypeIncome, models.CategoryFood, decimal.NewFromInt(5))
	s.ErrorIs(err, models.ErrInvalidCategory)

	s.EqualValues(1, s.countGoals())
	stored, err := s.repo.GetByID(s.ctx, s.userID, goal.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(500).Equal(stored.TargetValue))
}

func (s *GoalRepositorySuite) TestListByUser_Empty() {
	goals, err := s.repo.ListByUser(s.ctx, s.userID)
	s.NoError(err)
	s.Empty(goals)
}

func TestGoalRepository_Upsert_StorageErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	ioErr := errors.New("connection refused")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "goals"`).WillReturnError(ioErr)
	mock.ExpectRollback()

	goal, err := repo.Upsert(context.Background(), uuid.New(), models.TransactionTypeExpense, models.CategoryFood, decimal.NewFromInt(10))

	require.Error(t, err)
	assert.Nil(t, goal)
	assert.ErrorIs(t, err, ioErr)
	assert.Contains(t, err.Error(), "failed to look up goal")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalRepository_ListByUser_StorageError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGoalRepository(db)

	ioErr := errors.New("too many connections")
	mock.ExpectQuery(`SELECT \* FROM "goals"`).WillReturnError(ioErr)

	_, err := repo.ListByUser(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ioErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
