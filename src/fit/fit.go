// Package fit turns loose user input (optional height, weight range, dates) into the
// clean kg and date windows the grid is drawn for.
package fit

import (
	"math"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

const (
	// DefaultSpanDays is used whenever a date bound has to be made up.
	DefaultSpanDays = 8 * 7
	// MinSpanDays is the narrowest date window kept as given.
	MinSpanDays = 5*7 + 1

	AverageBMI   = 22.0
	BMIDeviation = 1.6

	MinKgSpanMark    = 8.0
	MinKgSpanHistory = 2.0
	KgPadding        = 0.7
	KgRounding       = 1.0

	// growth per side and step when no height is known
	plainGrowth = 1.0
)

// KgRange is a weight window in kg; Max > Min once fitted.
type KgRange struct {
	Min float64
	Max float64
}

func (r KgRange) Span() float64 { return r.Max - r.Min }

// Request collects the raw inputs. Zero values mean "not given".
type Request struct {
	Height  float64 // metres
	Kg      *KgRange
	Begin   time.Time
	End     time.Time
	History bool
	Today   time.Time // zero means time.Now()
}

// Fit resolves both windows.
func Fit(req Request) (KgRange, calendar.DateRange, error) {
	today := req.Today
	if today.IsZero() {
		today = time.Now()
	}
	dates, err := Dates(req.Begin, req.End, today)
	if err != nil {
		return KgRange{}, calendar.DateRange{}, err
	}
	kg, err := Kg(req.Height, req.Kg, req.History)
	if err != nil {
		return KgRange{}, calendar.DateRange{}, err
	}
	return kg, dates, nil
}

// Dates fills in missing bounds and widens windows narrower than MinSpanDays.
func Dates(begin, end, today time.Time) (calendar.DateRange, error) {
	switch {
	case !begin.IsZero() && !end.IsZero():
		if begin.After(end) {
			return calendar.DateRange{}, errs.Invalid("begin date %s is after end date %s",
				begin.Format(calendar.ISODate), end.Format(calendar.ISODate))
		}
		begin, end = calendar.Truncate(begin), calendar.Truncate(end)
	case !begin.IsZero():
		begin = calendar.Truncate(begin)
		end = calendar.AddDays(begin, DefaultSpanDays)
		logging.Infof("using default end date %s", end.Format(calendar.ISODate))
	case !end.IsZero():
		end = calendar.Truncate(end)
		begin = calendar.AddDays(end, -DefaultSpanDays)
		logging.Infof("using default begin date %s", begin.Format(calendar.ISODate))
	default:
		begin = calendar.LatestSunday(today)
		end = calendar.AddDays(begin, DefaultSpanDays)
		logging.Infof("using default dates %s and %s", begin.Format(calendar.ISODate), end.Format(calendar.ISODate))
	}

	r := calendar.DateRange{Begin: begin, End: end}
	if r.Days() >= MinSpanDays {
		return r, nil
	}
	r.Begin = calendar.LatestSunday(begin)
	r.End = calendar.AddDays(r.Begin, DefaultSpanDays)
	logging.Debugf("extended date range to %s", r)
	return r, nil
}

// Kg derives the weight window from an explicit hint or, failing that, the height.
func Kg(height float64, hint *KgRange, history bool) (KgRange, error) {
	var r KgRange
	h2 := height * height
	switch {
	case hint != nil:
		r = *hint
		if r.Max < r.Min {
			return KgRange{}, errs.Invalid("weight range %.1f-%.1f is reversed", r.Min, r.Max)
		}
	case height > 0:
		r = KgRange{Min: (AverageBMI - BMIDeviation) * h2, Max: (AverageBMI + BMIDeviation) * h2}
	default:
		return KgRange{}, errs.Invalid("need a weight range or a height")
	}

	minSpan := MinKgSpanMark
	if history {
		minSpan = MinKgSpanHistory
	}

	if r.Span() < minSpan {
		r.Min -= KgPadding
		r.Max += KgPadding
	}
	for r.Span() < minSpan {
		if height > 0 {
			r.Max += maxStep(r.Max / h2)
			r.Min -= minStep(r.Min / h2)
		} else {
			r.Max += plainGrowth
			r.Min -= plainGrowth
		}
	}

	r.Min = math.Floor(r.Min/KgRounding) * KgRounding
	r.Max = math.Ceil(r.Max/KgRounding) * KgRounding
	if !(r.Max > r.Min) {
		return KgRange{}, errs.Internal("fitted kg range %.2f-%.2f is empty", r.Min, r.Max)
	}
	logging.Debugf("fitted kg range %.1f-%.1f", r.Min, r.Max)
	return r, nil
}

// Grow slowly at high BMI so the interesting band keeps most of the page.
func maxStep(bmi float64) float64 {
	switch {
	case bmi >= 30:
		return 0.15
	case bmi >= 25:
		return 0.5
	case bmi >= 20:
		return 1.0
	default:
		return 1.5
	}
}

func minStep(bmi float64) float64 {
	switch {
	case bmi <= 18:
		return 0.25
	case bmi <= 20:
		return 0.5
	case bmi <= 25:
		return 1.0
	default:
		return 1.5
	}
}
