// Package calendar holds the date arithmetic the grid is built on. All dates are
// UTC midnights; callers pass arbitrary times and get them truncated to the day.
package calendar

import (
	"fmt"
	"time"
)

// ISODate is the layout used for dates on the command line and in history files.
const ISODate = "2006-01-02"

// Day returns the UTC midnight of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock part, keeping the date as seen in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// AddDays moves d by n calendar days.
func AddDays(d time.Time, n int) time.Time {
	return Truncate(d).AddDate(0, 0, n)
}

// DaysBetween returns the whole days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	a, b = Truncate(a), Truncate(b)
	return int(b.Sub(a).Hours() / 24)
}

// LatestSunday returns the Sunday on or before d.
func LatestSunday(d time.Time) time.Time {
	d = Truncate(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EarliestSunday returns the Sunday on or after d.
func EarliestSunday(d time.Time) time.Time {
	d = Truncate(d)
	wd := int(d.Weekday())
	if wd == 0 {
		return d
	}
	return d.AddDate(0, 0, 7-wd)
}

// LatestFirst returns the first day of d's month.
func LatestFirst(d time.Time) time.Time {
	y, m, _ := d.Date()
	return Day(y, m, 1)
}

// NextFirst returns the first day of the month after d's month.
func NextFirst(d time.Time) time.Time {
	return LatestFirst(d).AddDate(0, 1, 0)
}

func IsFirstDayOfMonth(d time.Time) bool { return d.Day() == 1 }

func IsLastDayOfMonth(d time.Time) bool { return Truncate(d).AddDate(0, 0, 1).Day() == 1 }

func IsFirstDayOfYear(d time.Time) bool { return d.Month() == time.January && d.Day() == 1 }

func IsLastDayOfYear(d time.Time) bool { return d.Month() == time.December && d.Day() == 31 }

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Begin time.Time
	End   time.Time
}

// Days is the number of days from Begin to End (not counting End itself).
func (r DateRange) Days() int { return DaysBetween(r.Begin, r.End) }

// Valid reports whether Begin is strictly before End.
func (r DateRange) Valid() bool { return Truncate(r.Begin).Before(Truncate(r.End)) }

// Contains reports whether d falls within the inclusive range.
func (r DateRange) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(Truncate(r.Begin)) && !d.After(Truncate(r.End))
}

func (r DateRange) String() string {
	return r.Begin.Format(ISODate) + ".." + r.End.Format(ISODate)
}
