package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitus/internal/constants"
)

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ValidateDate checks if the string matches the standard date format.
func ValidateDate(day string) bool {
	_, err := ParseDate(day)
	return err == nil
}

// AddDays shifts a date by n calendar days. Date arithmetic goes through
// AddDate so DST transitions never skip or repeat a day.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekStart returns the Monday on or before t. Weeks run Monday..Sunday, so
// a Sunday maps to the Monday six days earlier.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// NextWeekStart returns the Monday after the week containing t.
func NextWeekStart(t time.Time) time.Time {
	return AddDays(WeekStart(t), 7)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// NextMonthStart returns the first day of the month after t's.
func NextMonthStart(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}

// DaysBetween lists every date string from..to inclusive. It returns an
// error if either bound is malformed or to precedes from.
func DaysBetween(from, to string) ([]string, error) {
	start, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", to, from)
	}

	var days []string
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, FormatDate(d))
	}
	return days, nil
}
