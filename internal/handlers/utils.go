package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDParam is the path parameter naming the ledger owner
	UserIDParam = "userId"

	maxMonthsBack = 120
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromPath parses the ledger owner from the route
func getUserIDFromPath(c echo.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param(UserIDParam))
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func getIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// getIntParam returns the query parameter as an int, or defaultValue when absent.
// A present but malformed value is an error.
func getIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

func windowQuery(c echo.Context) dto.WindowQuery {
	return dto.WindowQuery{
		StartDate: strings.TrimSpace(c.QueryParam("start_date")),
		EndDate:   strings.TrimSpace(c.QueryParam("end_date")),
	}
}

// resolveWindow fills missing bounds from the default window and checks ordering
func resolveWindow(q dto.WindowQuery, def models.ReportingWindow) (models.ReportingWindow, error) {
	start, end := def.Start, def.End

	if q.StartDate != "" {
		parsed, err := time.Parse(models.DateLayout, q.StartDate)
		if err != nil {
			return models.ReportingWindow{}, models.NewValidationError("start_date", err)
		}
		start = parsed
	}

	if q.EndDate != "" {
		parsed, err := time.Parse(models.DateLayout, q.EndDate)
		if err != nil {
			return models.ReportingWindow{}, models.NewValidationError("end_date", err)
		}
		end = parsed
	}

	return models.NewReportingWindow(start, end)
}
