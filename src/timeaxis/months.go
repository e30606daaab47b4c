package timeaxis

import (
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
)

// MonthModeYearLevel is the bracket row of year ranges in month mode.
const MonthModeYearLevel = 1

// MonthStyles: January and December are drawn bold to frame each year.
type MonthStyles struct {
	Normal axis.Style
	Bold   axis.Style
}

func (s MonthStyles) For(m time.Month) axis.Style {
	if m == time.January || m == time.December {
		return s.Bold
	}
	return s.Normal
}

func MonthStylesFor(in Insets) MonthStyles {
	return MonthStyles{
		Normal: axis.NewStyle(axis.TickDefaults).Width(0.25).Label(true).Insets(in.Begin, in.End).Build(),
		Bold:   axis.NewStyle(axis.TickDefaults).Width(1.0).Bold(true).Label(true).Insets(in.Begin, in.End).Build(),
	}
}

// MonthAxis ticks the first of every month.
type MonthAxis struct {
	dates  calendar.DateRange
	styles MonthStyles
	names  Names
}

func (a *MonthAxis) Dates() calendar.DateRange { return a.dates }
func (a *MonthAxis) MonthMode() bool           { return true }

// Count starts at the first of Begin's month. Year brackets run to the last day of
// their last ticked month.
func (a *MonthAxis) Count(r Receiver) {
	end := calendar.Truncate(a.dates.End)
	first := calendar.LatestFirst(a.dates.Begin)
	yearStart, prev := first, first
	closeYear := func(from, lastMonth time.Time) {
		r.YearRange(yearEvent(from, calendar.AddDays(calendar.NextFirst(lastMonth), -1), MonthModeYearLevel))
	}
	for m := first; !m.After(end); m = calendar.NextFirst(m) {
		r.MonthTick(a.styles.For(m.Month()), m)
		if m.Year() != yearStart.Year() {
			closeYear(yearStart, prev)
			yearStart = m
		}
		prev = m
	}
	closeYear(yearStart, prev)
}
