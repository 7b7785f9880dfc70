// Package dateutil provides the company date formats and display helpers.
//
// Dates travel as yyyy-MM-dd and date-times as yyyy-MM-ddTHH:mm:ss.SSSZ,
// always in UTC.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/markusmobius/go-dateparser"
	"github.com/shopspring/decimal"
)

const (
	// DateLayout is the company date format.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the company date-time format.
	DateTimeLayout = "2006-01-02T15:04:05.000Z"

	// defaultTimeOfDay is appended to bare dates parsed as date-times.
	defaultTimeOfDay = "T06:00:00.000Z"
)

// ErrInvalidDate is returned when a string is not a recognizable date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a calendar date. Anything from the first 'T' on is ignored.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i > -1 {
		s = s[:i]
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, s, err)
	}
	return t, nil
}

// ParseDateTime parses a date-time in the company format.
//
// A bare date gets the default time of day 06:00 UTC. RFC 3339 input is also
// accepted.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "T") {
		s += defaultTimeOfDay
	}

	t, err := time.Parse(DateTimeLayout, s)
	if err == nil {
		return t, nil
	}
	if t, rerr := time.Parse(time.RFC3339Nano, s); rerr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, s, err)
}

// ParseLenient parses free-form, human-written dates such as "12 March 2023"
// or "yesterday". The company formats are tried first.
func ParseLenient(s string) (time.Time, error) {
	if t, err := ParseDateTime(s); err == nil {
		return t, nil
	}

	dt, err := dateparser.Parse(nil, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, s, err)
	}
	return dt.Time, nil
}

// FormatDate formats t as yyyy-MM-dd.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime formats t in the company date-time format, in UTC.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// DaysBetween returns the number of calendar days from start to end, both
// taken in the local time zone. The result is negative if end is before start.
func DaysBetween(start, end time.Time) int {
	s := toLocalDate(start)
	e := toLocalDate(end)
	return int(e.Sub(s).Hours() / 24)
}

func toLocalDate(t time.Time) time.Time {
	l := t.In(time.Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthAndDay formats a date as "Nov 20".
func MonthAndDay(t time.Time) string { return t.Format("Jan 2") }

// WeekdayName returns the full day name, e.g. "Monday".
func WeekdayName(t time.Time) string { return t.Weekday().String() }

// FullMonthName returns the full month name, e.g. "November".
func FullMonthName(t time.Time) string { return t.Month().String() }

// ShortDay formats a date as "Mon 20".
func ShortDay(t time.Time) string { return t.Format("Mon 2") }

// FullDate formats a date as dd/MM/yyyy.
func FullDate(t time.Time) string { return t.Format("02/01/2006") }

// FinancialDate formats a date as yyyy/MM/dd.
func FinancialDate(t time.Time) string { return t.Format("2006/01/02") }

// Hour formats the time of day as "2:00 PM".
func Hour(t time.Time) string { return t.Format("3:04 PM") }

// WeekOfYear returns the ISO week number of t.
func WeekOfYear(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// FormatCurrency formats an amount in US dollars, e.g. "$1,234.50" or
// "-$3.00".
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Round(2).Abs().Float64()
	s := "$" + humanize.FormatFloat("#,###.##", f)
	if d.Round(2).IsNegative() {
		return "-" + s
	}
	return s
}

// FormatPrice formats an amount with exactly two decimals and no grouping.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}
