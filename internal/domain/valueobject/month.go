// Package valueobject contains domain value objects and the pure budget arithmetic
// for the household ledger.
package valueobject

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/household-ledger/backend/internal/domain/error"
)

// MonthLayout is the wire format of a normalized month (always day 01).
const MonthLayout = "2006-01-02"

// monthInputLayouts are tried in order. Layouts without a zone are read as UTC.
var monthInputLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeMonth parses a month given as "YYYY-MM", "YYYY-MM-DD" or an ISO-8601
// timestamp and returns the first day of that month at 00:00 UTC.
// Timestamps carrying an offset are converted to UTC before truncation.
func NormalizeMonth(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidMonth,
			"month is required",
			domainerror.ErrInvalidMonth,
		)
	}

	for _, layout := range monthInputLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return StartOfMonth(parsed), nil
		}
	}

	return time.Time{}, domainerror.NewBudgetError(
		domainerror.ErrCodeInvalidMonth,
		fmt.Sprintf("month %q must be YYYY-MM, YYYY-MM-DD or an ISO-8601 timestamp", value),
		domainerror.ErrInvalidMonth,
	)
}

// StartOfMonth returns the first day of t's month at 00:00 UTC.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FormatMonth renders a month as YYYY-MM-01.
func FormatMonth(month time.Time) string {
	return StartOfMonth(month).Format(MonthLayout)
}

// MonthBounds returns the half-open interval [start, end) covering the month.
func MonthBounds(month time.Time) (start, end time.Time) {
	start = StartOfMonth(month)
	return start, start.AddDate(0, 1, 0)
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(month time.Time) int {
	start, end := MonthBounds(month)
	return int(end.Sub(start).Hours() / 24)
}

// DayOfMonthFor returns the elapsed-day count used by burn-rate projection:
// today's UTC day when month is the current month, otherwise the full month length.
func DayOfMonthFor(month, now time.Time) int {
	if StartOfMonth(month).Equal(StartOfMonth(now)) {
		return now.UTC().Day()
	}
	return DaysInMonth(month)
}
