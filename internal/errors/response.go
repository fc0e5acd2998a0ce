package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorResponse is the body of every non-2xx API response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails replaces the detail lines of the response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithField appends a "field: message" detail line
func WithField(field, message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = append(er.Error.Details, fmt.Sprintf("%s: %s", field, message))
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse builds the response for code with its default message
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError reports several rejected fields at once, sorted by field name
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	fields := make([]string, 0, len(fieldErrors))
	for field := range fieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	opts := make([]ErrorOption, 0, len(fields))
	for _, field := range fields {
		opts = append(opts, WithField(field, fieldErrors[field]))
	}
	return NewErrorResponse(ValidationGeneral, traceID, opts...)
}

// WrapSystemError replaces err with a generic SYSTEM_001 body.
// err is handed back unchanged for server-side logging.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// statusOverrides lists the codes whose status differs from their family's
var statusOverrides = map[ErrorCode]int{
	AuthInsufficientPermission: http.StatusForbidden,
	TransactionNotFound:        http.StatusNotFound,
	GoalNotFound:               http.StatusNotFound,
	GoalDuplicate:              http.StatusConflict,
	SystemRouteNotFound:        http.StatusNotFound,
	SystemRateLimitExceeded:    http.StatusTooManyRequests,
	SystemServiceUnavailable:   http.StatusServiceUnavailable,
}

// Family returns the prefix of the code, e.g. GOAL for GOAL_002
func (c ErrorCode) Family() string {
	family, _, _ := strings.Cut(string(c), "_")
	return family
}

// GetHTTPStatus maps a code onto its HTTP status. Validation, transaction and goal codes are
// client errors, auth codes are 401, and anything unknown is a 500.
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := statusOverrides[code]; ok {
		return status
	}
	if !IsValidErrorCode(code) {
		return http.StatusInternalServerError
	}

	switch code.Family() {
	case "VALIDATION", "TRANSACTION", "GOAL":
		return http.StatusBadRequest
	case "AUTH":
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsServerError reports whether the response is a 5xx
func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= http.StatusInternalServerError
}
