// Package timeaxis walks a date window and emits day or month ticks plus the month
// and year brackets that group them.
package timeaxis

import (
	"fmt"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
)

// MonthModeAbove is the span in days beyond which ticks are per month instead of per day.
const MonthModeAbove = 366

// Kind tells month brackets from year brackets.
type Kind int

const (
	MonthRange Kind = iota
	YearRange
)

func (k Kind) String() string {
	if k == YearRange {
		return "year"
	}
	return "month"
}

// RangeEvent is one contiguous month or year block of the walked window.
type RangeEvent struct {
	Kind         Kind
	Begin        time.Time
	End          time.Time
	BeginIsFirst bool // Begin is the first day of the period
	EndIsLast    bool // End is the last day of the period
	Label        string
	Level        int // bracket row, counted outward from the grid
}

// Days is the bracket span in days, not counting End.
func (e RangeEvent) Days() int { return calendar.DaysBetween(e.Begin, e.End) }

// Receiver consumes the walk. MonthTick is only used in month mode, DayTick only in day mode.
type Receiver interface {
	DayTick(style axis.Style, day time.Time)
	MonthTick(style axis.Style, month time.Time)
	MonthRange(ev RangeEvent)
	YearRange(ev RangeEvent)
}

// Names provides localized month names.
type Names interface {
	MonthName(m time.Month) string
	MonthAbbr(m time.Month) string
}

// Axis is a time axis in either granularity.
type Axis interface {
	Count(r Receiver)
	Dates() calendar.DateRange
	MonthMode() bool
}

// Insets are the distances of tick ends from the north and south page edges.
type Insets struct {
	Begin float64
	End   float64
}

// New picks the granularity for the window. In month mode the window is first
// widened so partial first and last years leave room for a year label; the
// returned axis reports the adjusted window.
func New(r calendar.DateRange, in Insets, names Names) Axis {
	days := r.Days()
	if days <= MonthModeAbove {
		return &DayAxis{dates: r, styles: DayStylesFor(days, in), names: names}
	}
	r = SnapForMonths(r)
	return &MonthAxis{dates: r, styles: MonthStylesFor(in), names: names}
}

// SnapForMonths moves a begin in November or December back to October 1 and an
// end in January or February forward to March 1.
func SnapForMonths(r calendar.DateRange) calendar.DateRange {
	if r.Begin.Month() > time.October {
		r.Begin = calendar.Day(r.Begin.Year(), time.October, 1)
	}
	if r.End.Month() < time.March {
		r.End = calendar.Day(r.End.Year(), time.March, 1)
	}
	return r
}

// MonthLabel picks the widest month label that fits a bracket of the given span.
func MonthLabel(names Names, month time.Time, days int) string {
	switch {
	case days > 6:
		return names.MonthName(month.Month())
	case days >= 3:
		return names.MonthAbbr(month.Month())
	case days >= 2:
		return fmt.Sprintf("%02d", int(month.Month()))
	default:
		return ""
	}
}

// YearLabel is the year number for brackets longer than two weeks.
func YearLabel(year time.Time, days int) string {
	if days > 14 {
		return fmt.Sprintf("%d", year.Year())
	}
	return ""
}

// DayLabel is the two digit day of month.
func DayLabel(d time.Time) string { return fmt.Sprintf("%02d", d.Day()) }

// MonthTickLabel is the first letter of the abbreviated month name.
func MonthTickLabel(names Names, d time.Time) string {
	for _, r := range names.MonthAbbr(d.Month()) {
		return string(r)
	}
	return ""
}

func monthEvent(names Names, begin, end time.Time, level int) RangeEvent {
	ev := RangeEvent{
		Kind:         MonthRange,
		Begin:        begin,
		End:          end,
		BeginIsFirst: calendar.IsFirstDayOfMonth(begin),
		EndIsLast:    calendar.IsLastDayOfMonth(end),
		Level:        level,
	}
	ev.Label = MonthLabel(names, begin, ev.Days())
	return ev
}

func yearEvent(begin, end time.Time, level int) RangeEvent {
	ev := RangeEvent{
		Kind:         YearRange,
		Begin:        begin,
		End:          end,
		BeginIsFirst: calendar.IsFirstDayOfYear(begin),
		EndIsLast:    calendar.IsLastDayOfYear(end),
		Level:        level,
	}
	ev.Label = YearLabel(begin, ev.Days())
	return ev
}
