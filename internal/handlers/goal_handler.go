package handlers

import (
	stderrors "errors"
	"net/http"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// GoalHandler handles goal HTTP requests
type GoalHandler struct {
	goalService   services.GoalServiceInterface
	reportService services.ReportServiceInterface
}

func NewGoalHandler(goalService services.GoalServiceInterface, reportService services.ReportServiceInterface) *GoalHandler {
	return &GoalHandler{
		goalService:   goalService,
		reportService: reportService,
	}
}

// SetGoal upserts the goal for a (type, category). A zero target deletes it.
// @Success 200 {object} dto.GoalResponse "Goal stored"
// @Success 200 {object} dto.GoalDeletionResponse "Zero target: deleted, or noop when no goal existed"
// @Router /users/{userId}/goals [post]
func (h *GoalHandler) SetGoal(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	txnType, category, target, err := h.bindGoal(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	goal, err := h.goalService.SetGoal(c.Request().Context(), userID, txnType, category, target)
	if err != nil {
		if stderrors.Is(err, repositories.ErrNoOpDeletion) {
			return c.JSON(http.StatusOK, dto.GoalDeletionResponse{Deleted: false, NoOp: true})
		}
		return SendServiceError(c, err)
	}

	if goal == nil {
		return c.JSON(http.StatusOK, dto.GoalDeletionResponse{Deleted: true})
	}

	return c.JSON(http.StatusOK, dto.NewGoalResponse(goal))
}

// ListGoals returns the stored goals without progress
// @Router /users/{userId}/goals [get]
func (h *GoalHandler) ListGoals(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	goals, err := h.goalService.ListGoals(c.Request().Context(), userID)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewGoalResponses(goals))
}

// GetGoal retrieves a single goal owned by the user
// @Router /users/{userId}/goals/{id} [get]
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Goal ID must be a valid UUID"))
	}

	goal, err := h.goalService.GetGoal(c.Request().Context(), userID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewGoalResponse(goal))
}

// UpdateGoal edits the type, category and target of an existing goal
// @Success 200 {object} dto.GoalResponse "Goal updated"
// @Router /users/{userId}/goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Goal ID must be a valid UUID"))
	}

	txnType, category, target, err := h.bindGoal(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	goal, err := h.goalService.UpdateGoal(c.Request().Context(), userID, id, txnType, category, target)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewGoalResponse(goal))
}

// GoalsProgress joins every goal with the actual total of its category over the window
// @Router /users/{userId}/goals/progress [get]
func (h *GoalHandler) GoalsProgress(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	query := windowQuery(c)
	if err := c.Validate(query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(ValidationDetails(err)...))
	}

	window, err := resolveWindow(query, h.reportService.DefaultWindow())
	if err != nil {
		return SendServiceError(c, err)
	}

	progress, err := h.reportService.GoalsView(c.Request().Context(), userID, window)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewGoalsViewResponse(window, progress))
}

// DeleteGoal removes a goal by id
// @Router /users/{userId}/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Goal ID must be a valid UUID"))
	}

	if err := h.goalService.DeleteGoal(c.Request().Context(), userID, id); err != nil {
		return SendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindGoal decodes a GoalRequest and resolves its type and category aliases
func (h *GoalHandler) bindGoal(c echo.Context) (models.TransactionType, string, decimal.Decimal, error) {
	var req dto.GoalRequest
	if err := c.Bind(&req); err != nil {
		return "", "", decimal.Zero, newRequestError(errors.ValidationGeneral, "Invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return "", "", decimal.Zero, newRequestError(errors.ValidationGeneral, ValidationDetails(err)...)
	}

	txnType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return "", "", decimal.Zero, err
	}

	category, err := models.CanonicalCategory(txnType, req.Category)
	if err != nil {
		return "", "", decimal.Zero, err
	}

	target, err := decimal.NewFromString(req.TargetValue.String())
	if err != nil {
		return "", "", decimal.Zero, newRequestError(errors.GoalInvalidTarget)
	}

	return txnType, category, target, nil
}
