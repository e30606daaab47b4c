// Package generator runs one page from user parameters to an encoded artifact:
// validate, read history, fit the windows, lay out and hand off to a backend.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/driver"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/fit"
	"github.com/iafilius/WeightCalendarGrid/src/history"
	"github.com/iafilius/WeightCalendarGrid/src/i18n"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
	"github.com/iafilius/WeightCalendarGrid/src/plot"
	"github.com/iafilius/WeightCalendarGrid/src/timeaxis"
	"github.com/iafilius/WeightCalendarGrid/src/weightspec"
)

const (
	ModeMark    = "mark"
	ModeHistory = "history"
)

// Modes describes the plot modes for --list-options.
var Modes = []struct{ Name, Description string }{
	{ModeMark, "printout for marking down new measured values"},
	{ModeHistory, "printout for showing history of values"},
}

// Params are the user inputs of one render. Zero values mean "not given".
type Params struct {
	Height   float64 `validate:"omitempty,gte=0.5,lte=3.0"`
	Weight   string  // weight range expression, see weightspec
	Begin    time.Time
	End      time.Time
	Input    string // history file, "-" for stdin
	Mode     string `validate:"oneof=mark history"`
	Lang     string `validate:"oneof=en de"`
	Initials string `validate:"max=16"`
	Driver   string
	Format   string
	Drivers  driver.Options
	Today    time.Time
}

// Result describes what was rendered.
type Result struct {
	ID     string
	Driver string
	Format string
	Dates  calendar.DateRange
	Kg     fit.KgRange
	Points int
}

// Normalize fills defaults and canonical spellings in place.
func (p *Params) Normalize() {
	p.Mode = strings.ToLower(strings.TrimSpace(p.Mode))
	if p.Mode == "" {
		p.Mode = ModeMark
	}
	if c, err := i18n.Lookup(p.Lang); err == nil {
		p.Lang = c.Lang
	}
	p.Initials = strings.TrimSpace(p.Initials)
}

// Validate checks field bounds and the combination of inputs.
func (p *Params) Validate() error {
	v := validator.New()
	if err := v.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", strings.ToLower(fe.Field()), fe.Tag(), fe.Param(), fe.Value()))
			}
			return errs.Invalid("%s", strings.Join(msgs, "; "))
		}
		return errs.Invalid("%v", err)
	}
	if !p.Begin.IsZero() && !p.End.IsZero() && !p.Begin.Before(p.End) {
		return errs.Invalid("begin date %s must be before end date %s",
			p.Begin.Format(calendar.ISODate), p.End.Format(calendar.ISODate))
	}
	return nil
}

// Generate renders one page to w. Nothing is written to w unless the backend
// gets as far as producing output.
func Generate(ctx context.Context, p Params, w io.Writer) (*Result, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	res := &Result{ID: uuid.New().String()}
	defer logging.TimeTrack(time.Now(), "render "+res.ID)

	cat, err := i18n.Lookup(p.Lang)
	if err != nil {
		return nil, err
	}
	ws, err := weightspec.Parse(p.Weight)
	if err != nil {
		return nil, err
	}
	var hint *fit.KgRange
	if !ws.Auto {
		hint = &fit.KgRange{Min: ws.Min, Max: ws.Max}
	}
	if hint == nil && p.Height == 0 && p.Input == "" {
		return nil, errs.Invalid("cannot determine plot parameters without a height, a weight range or input data")
	}
	hist := p.Mode == ModeHistory

	var points []plot.Point
	begin, end := p.Begin, p.End
	if p.Input != "" {
		samples, err := history.ReadFile(p.Input)
		if err != nil {
			return nil, err
		}
		points = plot.Build(samples, plot.DefaultDepth)
		win := plot.AdaptWindow(points, begin, end, hist)
		begin, end = win.Begin, win.End
		logging.Infof("[%s] %d samples from %s, window %s", res.ID, len(samples), p.Input, win)
	}

	today := p.Today
	if today.IsZero() {
		today = time.Now()
	}
	dates, err := fit.Dates(begin, end, today)
	if err != nil {
		return nil, err
	}
	visible := dates
	if dates.Days() > timeaxis.MonthModeAbove {
		visible = timeaxis.SnapForMonths(dates)
	}
	points = plot.Filter(points, visible)
	hint = plot.MergeKg(hint, points)
	if hint == nil && p.Height == 0 {
		return nil, errs.Invalid("no measured values in %s and no height or weight range given", visible)
	}

	kg, err := fit.Kg(p.Height, hint, hist)
	if err != nil {
		return nil, err
	}

	l, err := layout.New(layout.Options{
		Height:   p.Height,
		Kg:       kg,
		Dates:    dates,
		History:  hist,
		Points:   points,
		Initials: p.Initials,
		Catalog:  cat,
	})
	if err != nil {
		return nil, err
	}

	d, format, err := pick(driver.Registry(p.Drivers), p.Driver, p.Format)
	if err != nil {
		return nil, err
	}
	res.Driver, res.Format = d.Name(), format
	res.Dates, res.Kg, res.Points = l.Dates(), kg, len(points)
	logging.Infof("[%s] driver=%s format=%s height=%.2f kg=%.0f-%.0f dates=%s initials=%q",
		res.ID, res.Driver, format, p.Height, kg.Min, kg.Max, l.Dates(), p.Initials)

	if err := d.Render(ctx, l, format, w); err != nil {
		return nil, fmt.Errorf("render with %s: %w", d.Name(), err)
	}
	return res, nil
}

// pick resolves the backend and format. A format without a driver selects the
// first available backend writing that format.
func pick(drivers []driver.Driver, name, format string) (driver.Driver, string, error) {
	var (
		d   driver.Driver
		err error
	)
	if name == "" && format != "" {
		d, err = driver.ForFormat(drivers, format)
	} else {
		d, err = driver.Resolve(drivers, name)
	}
	if err != nil {
		return nil, "", err
	}
	f, err := driver.ResolveFormat(d, format)
	if err != nil {
		return nil, "", err
	}
	return d, f, nil
}
