package handlers

import (
	"net/http"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves the read-only dashboard and report views
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns totals and top categories for a window
// @Router /users/{userId}/dashboard [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	window, err := h.window(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	summary, err := h.reportService.DashboardSummary(c.Request().Context(), userID, window)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewDashboardResponse(summary))
}

// MonthlyReport returns the trailing monthly income and expense series
// @Param months query int false "Number of whole months ending with the current one" default(12)
// @Router /users/{userId}/reports/monthly [get]
func (h *ReportHandler) MonthlyReport(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	months, err := getIntParam(c, "months", 0)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}
	if months < 0 || months > maxMonthsBack {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("months must be between 1 and 120"))
	}

	report, err := h.reportService.MonthlyReport(c.Request().Context(), userID, months)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewMonthlyReportResponse(report))
}

// CategoryReport ranks all categories of one type over a window
// @Param type query string true "Transaction type" Enums(income, expense)
// @Router /users/{userId}/reports/categories [get]
func (h *ReportHandler) CategoryReport(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	rawType := c.QueryParam("type")
	if rawType == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("type: is required"))
	}

	txnType, err := models.ParseTransactionType(rawType)
	if err != nil {
		return SendServiceError(c, err)
	}

	window, err := h.window(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	rollups, err := h.reportService.CategoryReport(c.Request().Context(), userID, window, txnType)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewCategoryReportResponse(window, txnType, rollups))
}

func (h *ReportHandler) window(c echo.Context) (models.ReportingWindow, error) {
	query := windowQuery(c)
	if err := c.Validate(query); err != nil {
		return models.ReportingWindow{}, newRequestError(errors.ValidationInvalidDate, ValidationDetails(err)...)
	}
	return resolveWindow(query, h.reportService.DefaultWindow())
}
