package handlers

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"finance-tracker/internal/errors"
	"finance-tracker/internal/models"
	"finance-tracker/internal/repositories"

	"github.com/labstack/echo/v4"
)

// Handlers respond with SendError for client errors, SendServiceError for anything returned by
// the service layer, and SendSystemError for internal failures. Internal details never reach the body.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	if errorResponse.IsServerError() {
		slog.Warn("responding with server error",
			"trace_id", traceID,
			"code", code,
			"path", c.Request().URL.Path,
		)
	}
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internalErr := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", internalErr,
	)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// SendServiceError maps a domain error onto its coded response
func SendServiceError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, repositories.ErrTransactionNotFound):
		return SendError(c, errors.TransactionNotFound)
	case stderrors.Is(err, repositories.ErrGoalNotFound):
		return SendError(c, errors.GoalNotFound)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		return SendError(c, errors.SystemServiceUnavailable)
	}

	var re *requestError
	if stderrors.As(err, &re) {
		return SendError(c, re.code, errors.WithDetails(re.details...))
	}

	var ve *models.ValidationError
	if stderrors.As(err, &ve) {
		return SendError(c, validationCode(ve), errors.WithDetails(fmt.Sprintf("%s: %v", ve.Field, ve.Err)))
	}

	return SendSystemError(c, err)
}

// requestError is a malformed request detected before the service layer
type requestError struct {
	code    errors.ErrorCode
	details []string
}

func newRequestError(code errors.ErrorCode, details ...string) *requestError {
	return &requestError{code: code, details: details}
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %v", e.code, e.details)
}

func validationCode(ve *models.ValidationError) errors.ErrorCode {
	switch {
	case stderrors.Is(ve.Err, models.ErrInvalidTransactionType):
		return errors.TransactionInvalidType
	case stderrors.Is(ve.Err, models.ErrInvalidCategory):
		return errors.TransactionInvalidCategory
	case stderrors.Is(ve.Err, models.ErrNegativeValue), stderrors.Is(ve.Err, models.ErrValuePrecision):
		if ve.Field == "target_value" {
			return errors.GoalInvalidTarget
		}
		return errors.TransactionInvalidValue
	case stderrors.Is(ve.Err, models.ErrZeroTargetUpdate):
		return errors.GoalInvalidTarget
	case stderrors.Is(ve.Err, models.ErrDuplicateGoal):
		return errors.GoalDuplicate
	case stderrors.Is(ve.Err, models.ErrFutureDate):
		return errors.TransactionFutureDate
	case stderrors.Is(ve.Err, models.ErrMissingDate), stderrors.Is(ve.Err, models.ErrMissingUser):
		return errors.ValidationRequiredField
	case stderrors.Is(ve.Err, models.ErrInvalidWindow):
		return errors.ValidationInvalidWindow
	default:
		return errors.ValidationGeneral
	}
}
