package util

import (
	"fmt"
	"time"
)

// Calendar dates are carried as midnight UTC values so that comparisons never
// depend on the server's zone.

// DateOf returns the calendar date of t as observed in loc
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date in loc
func Today(now time.Time, loc *time.Location) time.Time {
	return DateOf(now, loc)
}

// MonthStart returns the first day of the month containing date
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the month containing date
func MonthEnd(date time.Time) time.Time {
	// Day 0 of next month is the last day of this month
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// IsMonthStart reports whether date is the first day of a month
func IsMonthStart(date time.Time) bool {
	return date.Day() == 1 && date.Hour() == 0 && date.Minute() == 0 && date.Second() == 0 && date.Nanosecond() == 0
}

// YearMonth builds the first-of-month date for a year and month number
func YearMonth(year, month int) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if year < 1900 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range", year)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// MinDate returns the earlier of a and b
func MinDate(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}
