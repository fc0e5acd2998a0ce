package handlers

import (
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles ledger HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	reportService      services.ReportServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	reportService services.ReportServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		reportService:      reportService,
	}
}

// CreateTransaction records a ledger entry
// @Router /users/{userId}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	input, err := bindTransactionInput(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request().Context(), userID, *input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// ListTransactions returns the ledger view for a window
// @Param start_date query string false "Window start (YYYY-MM-DD), defaults to the current month"
// @Param end_date query string false "Window end (YYYY-MM-DD), defaults to the current month"
// @Param sort query string false "Date order" Enums(asc, desc) default(desc)
// @Param type query string false "Filter by type" Enums(income, expense)
// @Param category query string false "Filter by category"
// @Router /users/{userId}/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	query := dto.LedgerQuery{
		WindowQuery: windowQuery(c),
		Sort:        strings.ToLower(strings.TrimSpace(c.QueryParam("sort"))),
		Type:        strings.TrimSpace(c.QueryParam("type")),
		Category:    strings.TrimSpace(c.QueryParam("category")),
	}
	if err := c.Validate(query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(ValidationDetails(err)...))
	}

	window, err := resolveWindow(query.WindowQuery, h.reportService.DefaultWindow())
	if err != nil {
		return SendServiceError(c, err)
	}

	filter, err := ledgerFilter(query)
	if err != nil {
		return SendServiceError(c, err)
	}

	order := models.SortOrder(query.Sort)
	if order == "" {
		order = models.SortDateDesc
	}

	transactions, err := h.reportService.LedgerView(c.Request().Context(), userID, window, order, filter)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.NewTransactionResponses(transactions),
		Window:       dto.NewWindowResponse(window),
		Sort:         string(order),
		Count:        len(transactions),
	})
}

// GetTransaction retrieves a single entry owned by the user
// @Router /users/{userId}/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	transaction, err := h.transactionService.GetTransaction(c.Request().Context(), userID, id)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// UpdateTransaction fully replaces the editable fields of an entry
// @Router /users/{userId}/transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	input, err := bindTransactionInput(c)
	if err != nil {
		return SendServiceError(c, err)
	}

	transaction, err := h.transactionService.UpdateTransaction(c.Request().Context(), userID, id, *input)
	if err != nil {
		return SendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// DeleteTransaction removes an entry
// @Router /users/{userId}/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromPath(c)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid user ID"))
	}

	id, err := getIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Transaction ID must be a valid UUID"))
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), userID, id); err != nil {
		return SendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindTransactionInput decodes and validates the body, mapping aliases to canonical names
func bindTransactionInput(c echo.Context) (*services.TransactionInput, error) {
	var req dto.TransactionRequest
	if err := c.Bind(&req); err != nil {
		return nil, newRequestError(errors.ValidationGeneral, "Invalid request body")
	}

	if err := c.Validate(req); err != nil {
		return nil, newRequestError(errors.ValidationGeneral, ValidationDetails(err)...)
	}

	txnType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		return nil, err
	}

	category, err := models.CanonicalCategory(txnType, req.Category)
	if err != nil {
		return nil, err
	}

	value, err := decimal.NewFromString(req.Value.String())
	if err != nil {
		return nil, newRequestError(errors.TransactionInvalidValue)
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return nil, newRequestError(errors.ValidationInvalidDate)
	}

	return &services.TransactionInput{
		Type:        txnType,
		Category:    category,
		Value:       value,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	}, nil
}

func ledgerFilter(query dto.LedgerQuery) (models.LedgerFilter, error) {
	var filter models.LedgerFilter

	if query.Type != "" {
		txnType, err := models.ParseTransactionType(query.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = txnType
	}

	if query.Category == "" {
		return filter, nil
	}

	if filter.Type != "" {
		category, err := models.CanonicalCategory(filter.Type, query.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = category
		return filter, nil
	}

	for _, t := range models.AllTransactionTypes() {
		if category, err := models.CanonicalCategory(t, query.Category); err == nil {
			filter.Category = category
			return filter, nil
		}
	}
	return filter, models.NewValidationError("category", models.ErrInvalidCategory)
}
