package models

import (
	"time"
)

const DateLayout = "2006-01-02"

// ReportingWindow is an inclusive range of calendar dates
type ReportingWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DateOf truncates t to its calendar date at UTC midnight
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewReportingWindow builds a window from two dates, failing when start is after end
func NewReportingWindow(start, end time.Time) (ReportingWindow, error) {
	w := ReportingWindow{Start: DateOf(start), End: DateOf(end)}
	if err := w.Validate(); err != nil {
		return ReportingWindow{}, err
	}
	return w, nil
}

// MonthWindow returns the calendar month containing t
func MonthWindow(t time.Time) ReportingWindow {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return ReportingWindow{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// DefaultWindow is the calendar month containing now
func DefaultWindow(now time.Time) ReportingWindow {
	return MonthWindow(now)
}

// TrailingMonthsWindow spans monthsBack whole calendar months ending with the month of now
func TrailingMonthsWindow(now time.Time, monthsBack int) ReportingWindow {
	if monthsBack < 1 {
		monthsBack = 1
	}
	current := MonthWindow(now)
	return ReportingWindow{
		Start: current.Start.AddDate(0, -(monthsBack - 1), 0),
		End:   current.End,
	}
}

// Validate ensures both bounds are set and ordered
func (w ReportingWindow) Validate() error {
	if w.Start.IsZero() {
		return NewValidationError("start_date", ErrMissingDate)
	}
	if w.End.IsZero() {
		return NewValidationError("end_date", ErrMissingDate)
	}
	if DateOf(w.Start).After(DateOf(w.End)) {
		return NewValidationError("start_date", ErrInvalidWindow)
	}
	return nil
}

// Contains reports whether the calendar date of t falls inside the window
func (w ReportingWindow) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(w.Start)) && !d.After(DateOf(w.End))
}

// MonthKey formats the month of t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
