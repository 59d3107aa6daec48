// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/constants"
)

const (
	// DateLayout is the format expected in config files and request bodies.
	DateLayout = constants.DateLayout

	// DisplayLayout is the format used on certificates and schedule tables.
	DisplayLayout = constants.DisplayDateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a calendar date in DateLayout. The result is midnight UTC.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(date))
}

// AddMonths returns the date the given number of calendar months after t.
// Days that do not exist in the target month roll over into the following
// month (Jan 31 + 1 month is Mar 3, or Mar 2 in a leap year) instead of being
// clamped to the month end.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0)
}

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return AddMonths(t, months).Format(layout), nil
}

// FormatDisplay renders a date for certificates and tables.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}
