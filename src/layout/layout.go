// Package layout owns the page geometry, maps kg and dates to page positions and
// drives a Canvas through one complete render of the grid.
package layout

import (
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/fit"
	"github.com/iafilius/WeightCalendarGrid/src/i18n"
	"github.com/iafilius/WeightCalendarGrid/src/plot"
	"github.com/iafilius/WeightCalendarGrid/src/timeaxis"
)

// PlotStyle holds the look of the recorded data layer.
type PlotStyle struct {
	MarkDelta       float64 // mm, half size of a diagonal mark
	MarkLineWidth   float64 // pt
	LineWidth       float64 // pt
	LineShorten     float64 // mm cut from both ends of value line segments
	StemPointRadius float64 // mm
	Color           axis.Color
	Palette         plot.Palette
}

var DefaultPlotStyle = PlotStyle{
	MarkDelta:       0.7,
	MarkLineWidth:   1.25,
	LineWidth:       1.25,
	LineShorten:     1.6,
	StemPointRadius: 1.41 * 0.7,
	Color:           axis.Color{R: 0, G: 0.6, B: 0},
	Palette:         plot.DefaultPalette,
}

// Individual marks are drawn for windows shorter than this many days.
const MarksBelowDays = 250

// Options are the fitted inputs of one page.
type Options struct {
	Page     Page
	Height   float64 // metres, 0 hides the BMI axis
	Kg       fit.KgRange
	Dates    calendar.DateRange
	History  bool
	Points   []plot.Point
	Initials string
	Catalog  *i18n.Catalog
	Plot     PlotStyle
}

// Layout is built once per page and is read-only afterwards.
type Layout struct {
	opts   Options
	page   Page
	dates  calendar.DateRange
	days   int
	kgAxis *axis.Axis
	bmi    *axis.Axis
	time   timeaxis.Axis
}

// New builds the axes for the fitted windows.
func New(opts Options) (*Layout, error) {
	if opts.Page.Width == 0 {
		opts.Page = A4Landscape
	}
	if opts.Plot == (PlotStyle{}) {
		opts.Plot = DefaultPlotStyle
	}
	if opts.Catalog == nil {
		c, err := i18n.Lookup(i18n.DefaultLang)
		if err != nil {
			return nil, err
		}
		opts.Catalog = c
	}
	if !(opts.Kg.Max > opts.Kg.Min) {
		return nil, errs.Internal("layout kg range %.2f-%.2f is empty", opts.Kg.Min, opts.Kg.Max)
	}
	if !opts.Dates.Valid() {
		return nil, errs.Internal("layout date range %s is empty", opts.Dates)
	}
	p := opts.Page

	l := &Layout{opts: opts, page: p}
	l.time = timeaxis.New(opts.Dates, timeaxis.Insets{
		Begin: p.SepNorth - p.Overhang,
		End:   p.SepSouth - p.Overhang,
	}, opts.Catalog)
	l.dates = l.time.Dates()
	l.days = l.dates.Days()

	var err error
	margins := axis.Margins{Begin: p.SepWest, End: p.SepEast, Overhang: p.Overhang}
	if l.kgAxis, err = axis.KgAxis(opts.Kg.Min, opts.Kg.Max, margins); err != nil {
		return nil, err
	}
	if opts.Height > 0 {
		if l.bmi, err = axis.BMIAxis(opts.Kg.Min, opts.Kg.Max, opts.Height, margins); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Layout) Page() Page                   { return l.page }
func (l *Layout) Dates() calendar.DateRange    { return l.dates }
func (l *Layout) Days() int                    { return l.days }
func (l *Layout) KgRange() fit.KgRange         { return l.opts.Kg }
func (l *Layout) ShowBMI() bool                { return l.bmi != nil }
func (l *Layout) Catalog() *i18n.Catalog       { return l.opts.Catalog }
func (l *Layout) TimeAxis() timeaxis.Axis      { return l.time }
func (l *Layout) KgAxis() *axis.Axis           { return l.kgAxis }
func (l *Layout) BMIAxis() *axis.Axis          { return l.bmi }
func (l *Layout) History() bool                { return l.opts.History }

// X maps a date to its page position between the west and east separators.
func (l *Layout) X(d time.Time) float64 {
	return l.page.SepWest + l.page.InnerWidth()*float64(calendar.DaysBetween(l.dates.Begin, d))/float64(l.days)
}

// Y maps kg to its page position; larger weights are higher up the page.
func (l *Layout) Y(kg float64) float64 {
	k := l.opts.Kg
	return l.page.Height - l.page.SepSouth - l.page.InnerHeight()*(kg-k.Min)/(k.Max-k.Min)
}

// YBMI maps a BMI value through the kg mapping.
func (l *Layout) YBMI(bmi float64) float64 {
	return l.Y(bmi * l.opts.Height * l.opts.Height)
}

// DayWidth is the horizontal distance between two consecutive days.
func (l *Layout) DayWidth() float64 {
	return l.page.InnerWidth() / float64(l.days)
}

// DrawMarks reports whether recorded values get individual marks.
func (l *Layout) DrawMarks() bool { return l.days < MarksBelowDays }

// DrawValueLines reports whether stems and day-to-day value lines are drawn.
func (l *Layout) DrawValueLines() bool {
	return !l.opts.History || l.days < plot.HistoryMonthsFrom
}
