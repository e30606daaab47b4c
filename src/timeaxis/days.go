package timeaxis

import (
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
)

// Bracket rows in day mode.
const (
	DayModeMonthLevel = 1
	DayModeYearLevel  = 2
)

// DayStyles collapses the five working days into one style.
type DayStyles struct {
	Weekday  axis.Style
	Saturday axis.Style
	Sunday   axis.Style
}

func (s DayStyles) For(d time.Time) axis.Style {
	switch d.Weekday() {
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return s.Weekday
	}
}

// DayStylesFor thins out labels as the window grows: beyond 14 weeks only Sundays
// are labelled, from 65 days on labels are turned upright.
func DayStylesFor(days int, in Insets) DayStyles {
	labels, rot := true, 0
	switch {
	case days > 14*7:
		labels = false
	case days >= 65:
		rot = 90
	}
	base := func() *axis.StyleBuilder {
		return axis.NewStyle(axis.TickDefaults).Rotate(rot).Insets(in.Begin, in.End)
	}
	return DayStyles{
		Weekday:  base().Width(0.15).Label(labels).Build(),
		Saturday: base().Width(0.5).Bold(true).Label(labels).Build(),
		Sunday:   base().Width(1.0).Bold(true).Label(true).Build(),
	}
}

// DayAxis ticks every day of the window.
type DayAxis struct {
	dates  calendar.DateRange
	styles DayStyles
	names  Names
}

func (a *DayAxis) Dates() calendar.DateRange { return a.dates }
func (a *DayAxis) MonthMode() bool           { return false }
func (a *DayAxis) Styles() DayStyles         { return a.styles }

// Count emits one DayTick per day, Begin and End included, and closes a month or
// year bracket whenever the month or year changes. Open brackets are flushed at the end.
func (a *DayAxis) Count(r Receiver) {
	begin, end := calendar.Truncate(a.dates.Begin), calendar.Truncate(a.dates.End)
	monthStart, yearStart := begin, begin
	prev := begin
	for day := begin; !day.After(end); day = day.AddDate(0, 0, 1) {
		r.DayTick(a.styles.For(day), day)
		if day.Month() != monthStart.Month() || day.Year() != monthStart.Year() {
			r.MonthRange(monthEvent(a.names, monthStart, prev, DayModeMonthLevel))
			monthStart = day
		}
		if day.Year() != yearStart.Year() {
			r.YearRange(yearEvent(yearStart, prev, DayModeYearLevel))
			yearStart = day
		}
		prev = day
	}
	r.MonthRange(monthEvent(a.names, monthStart, prev, DayModeMonthLevel))
	r.YearRange(yearEvent(yearStart, prev, DayModeYearLevel))
}
