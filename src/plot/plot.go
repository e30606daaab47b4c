// Package plot prepares recorded weights for drawing: a dense per-day series with a
// trailing moving average and a quality fraction per day.
package plot

import (
	"sort"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/fit"
)

// DefaultDepth is the moving average window in days.
const DefaultDepth = 10

// Sample is one recorded weight.
type Sample struct {
	Date time.Time
	Kg   float64
}

// Point is one calendar day of the dense series.
type Point struct {
	Date       time.Time
	Kg         float64
	Measured   bool
	Average    float64
	Quality    float64 // populated fraction of the window
	HasAverage bool
}

type slot struct {
	kg float64
	ok bool
}

// window is a fixed capacity ring of optional values, newest overwriting oldest.
// It starts empty, so early averages rest on fewer days.
type window struct {
	slots []slot
	next  int
}

func newWindow(depth int) *window {
	return &window{slots: make([]slot, 0, depth)}
}

func (w *window) push(s slot) {
	if len(w.slots) < cap(w.slots) {
		w.slots = append(w.slots, s)
		return
	}
	w.slots[w.next] = s
	w.next = (w.next + 1) % len(w.slots)
}

func (w *window) stats() (avg, quality float64, ok bool) {
	var sum float64
	n := 0
	for _, s := range w.slots {
		if s.ok {
			sum += s.kg
			n++
		}
	}
	if n == 0 {
		return 0, 0, false
	}
	return sum / float64(n), float64(n) / float64(cap(w.slots)), true
}

// Build sorts the samples and walks every day from the first to the last one. Of
// several samples on one day the last wins.
func Build(samples []Sample, depth int) []Point {
	if len(samples) == 0 {
		return nil
	}
	if depth <= 0 {
		depth = DefaultDepth
	}
	byDay := make(map[time.Time]float64, len(samples))
	for _, s := range samples {
		byDay[calendar.Truncate(s.Date)] = s.Kg
	}
	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first, last := days[0], days[len(days)-1]
	w := newWindow(depth)
	points := make([]Point, 0, calendar.DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		kg, ok := byDay[d]
		w.push(slot{kg: kg, ok: ok})
		p := Point{Date: d, Kg: kg, Measured: ok}
		p.Average, p.Quality, p.HasAverage = w.stats()
		points = append(points, p)
	}
	return points
}

// Palette maps quality to the colour of the moving average.
type Palette struct {
	Low    axis.Color
	High   axis.Color
	Cutoff float64
}

var DefaultPalette = Palette{
	Low:    axis.Color{R: 0.85, G: 0.85, B: 0.85},
	High:   axis.Color{R: 0, G: 0, B: 0.8},
	Cutoff: 0.30,
}

// Color rescales q from [Cutoff,1] to [0,1] and interpolates Low to High.
// Anything at or below the cutoff is Low.
func (p Palette) Color(q float64) axis.Color {
	if q <= p.Cutoff {
		return p.Low
	}
	if q >= 1 {
		return p.High
	}
	return p.Low.Lerp(p.High, (q-p.Cutoff)/(1-p.Cutoff))
}

// Sufficient reports whether an average of quality q is trusted enough to draw.
func (p Palette) Sufficient(q float64) bool { return q >= p.Cutoff }

// Span returns the first and last day of the series.
func Span(points []Point) (calendar.DateRange, bool) {
	if len(points) == 0 {
		return calendar.DateRange{}, false
	}
	return calendar.DateRange{Begin: points[0].Date, End: points[len(points)-1].Date}, true
}

// Filter keeps the points inside r.
func Filter(points []Point, r calendar.DateRange) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if r.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out
}

// HistoryMonthsFrom is the window length from which history pages snap to month bounds.
const HistoryMonthsFrom = 185

// AdaptWindow fits the date window to the recorded data. Zero begin and end take the
// data span. History pages snap outward to months or Sundays; mark pages show the
// eight weeks starting the Sunday before the last ten days, moved back if that
// leaves the start without data.
func AdaptWindow(points []Point, begin, end time.Time, history bool) calendar.DateRange {
	span, ok := Span(points)
	if !ok {
		return calendar.DateRange{Begin: begin, End: end}
	}
	if begin.IsZero() && end.IsZero() {
		begin, end = span.Begin, span.End
	}
	if history {
		if begin.IsZero() {
			begin = span.Begin
		}
		if end.IsZero() {
			end = span.End
		}
		if calendar.DaysBetween(begin, end) >= HistoryMonthsFrom {
			return calendar.DateRange{Begin: calendar.LatestFirst(begin), End: calendar.NextFirst(end)}
		}
		return calendar.DateRange{Begin: calendar.LatestSunday(begin), End: calendar.EarliestSunday(end)}
	}
	if end.IsZero() {
		end = span.End
	}
	r := calendar.DateRange{Begin: calendar.LatestSunday(calendar.AddDays(end, -10))}
	r.End = calendar.AddDays(r.Begin, fit.DefaultSpanDays)
	if in := Filter(points, r); len(in) > 0 && !in[0].Date.Equal(r.Begin) {
		r.Begin = calendar.LatestSunday(in[0].Date)
		r.End = calendar.AddDays(r.Begin, fit.DefaultSpanDays)
	}
	return r
}

// MergeKg widens hint so it covers every measured weight in points. A nil hint
// becomes the measured extent; nil is returned when nothing was measured.
func MergeKg(hint *fit.KgRange, points []Point) *fit.KgRange {
	var lo, hi float64
	seen := false
	for _, p := range points {
		if !p.Measured {
			continue
		}
		if !seen || p.Kg < lo {
			lo = p.Kg
		}
		if !seen || p.Kg > hi {
			hi = p.Kg
		}
		seen = true
	}
	if !seen {
		return hint
	}
	if hint == nil {
		return &fit.KgRange{Min: lo, Max: hi}
	}
	out := *hint
	if lo < out.Min {
		out.Min = lo
	}
	if hi > out.Max {
		out.Max = hi
	}
	return &out
}
