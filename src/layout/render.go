package layout

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
	"github.com/iafilius/WeightCalendarGrid/src/timeaxis"
)

const (
	// bracket rows start this far outside the separators and are this far apart
	bracketBase = 2.0 + 1.5
	bracketStep = 3.5
	// brackets of adjacent periods keep this gap when days are wide enough
	bracketGap = 1.25

	initialsInset = 7.0
	footerSize    = 8.0
	titleInset    = 6.0
)

// Render draws the page: background, BMI axis, time axis, kg axis, recorded data,
// initials and footer. EndPage runs whenever BeginPage succeeded.
func (l *Layout) Render(c Canvas) (err error) {
	defer logging.TimeTrack(time.Now(), "render")
	if err := c.BeginPage(l.page); err != nil {
		return fmt.Errorf("begin page: %w", err)
	}
	defer func() {
		if endErr := c.EndPage(); endErr != nil {
			err = errors.Join(err, fmt.Errorf("end page: %w", endErr))
		}
	}()

	c.FillRect(Point{0, 0}, l.page.Width, l.page.Height, axis.White)
	if l.bmi != nil {
		l.renderNumericAxis(c, l.bmi, l.Y)
	}
	l.renderTimeAxis(c)
	l.renderNumericAxis(c, l.kgAxis, l.Y)
	l.renderPlot(c)
	if l.opts.Initials != "" {
		l.renderInitials(c)
	}
	l.renderFooter(c)
	return nil
}

// renderNumericAxis draws horizontal lines for the kg or BMI axis. Positions
// are always kg.
func (l *Layout) renderNumericAxis(c Canvas, a *axis.Axis, y func(float64) float64) {
	a.Count(func(st axis.Style, value, pos float64) {
		yy := y(pos)
		c.DrawTick(Tick{
			Orientation: Horizontal,
			From:        Point{st.BeginInset, yy},
			To:          Point{l.page.Width - st.EndInset, yy},
			Style:       st,
			Label:       fmt.Sprintf(a.LabelFormat, value),
		})
	})
}

func (l *Layout) renderTimeAxis(c Canvas) {
	l.time.Count(&timeReceiver{l: l, c: c, rangeStyle: axis.NewStyle(axis.RangeDefaults).Build()})
}

type timeReceiver struct {
	l          *Layout
	c          Canvas
	rangeStyle axis.Style
}

func (r *timeReceiver) tick(st axis.Style, d time.Time, label string) {
	x := r.l.X(d)
	r.c.DrawTick(Tick{
		Orientation: Vertical,
		From:        Point{x, st.BeginInset},
		To:          Point{x, r.l.page.Height - st.EndInset},
		Style:       st,
		Label:       label,
	})
}

func (r *timeReceiver) DayTick(st axis.Style, d time.Time) {
	r.tick(st, d, timeaxis.DayLabel(d))
}

func (r *timeReceiver) MonthTick(st axis.Style, d time.Time) {
	r.tick(st, d, timeaxis.MonthTickLabel(r.l.opts.Catalog, d))
}

func (r *timeReceiver) MonthRange(ev timeaxis.RangeEvent) { r.bracket(ev) }
func (r *timeReceiver) YearRange(ev timeaxis.RangeEvent)  { r.bracket(ev) }

// bracket draws the range above the grid and again below it.
func (r *timeReceiver) bracket(ev timeaxis.RangeEvent) {
	for _, b := range r.l.Brackets(ev, r.rangeStyle) {
		r.c.DrawBracketRange(b)
	}
}

// Brackets returns the north and south bracket for a range event.
func (l *Layout) Brackets(ev timeaxis.RangeEvent, st axis.Style) [2]Bracket {
	var dx2 float64
	if dw := l.DayWidth(); dw >= bracketGap {
		dx2 = 0.5 * (dw - bracketGap)
	}
	yofs := bracketBase + bracketStep*float64(ev.Level)
	b := Bracket{
		Begin:      l.X(ev.Begin) - dx2,
		End:        l.X(ev.End) + dx2,
		ArrowBegin: ev.BeginIsFirst,
		ArrowEnd:   ev.EndIsLast,
		Label:      ev.Label,
		Style:      st,
	}
	north, south := b, b
	north.Y = l.page.SepNorth - yofs
	south.Y = l.page.Height - l.page.SepSouth + yofs
	return [2]Bracket{north, south}
}

func (l *Layout) renderPlot(c Canvas) {
	pts := l.opts.Points
	if len(pts) == 0 {
		return
	}
	ps := l.opts.Plot
	pal := ps.Palette
	marks := l.DrawMarks()
	plotLine := LineHints{Width: ps.LineWidth * PtToMM, Color: ps.Color}

	if !marks {
		dot := ps.MarkLineWidth * PtToMM // radius of a round cap of twice the mark width
		for _, p := range pts {
			if p.Measured {
				fill := ps.Color
				c.DrawCircle(Point{l.X(p.Date), l.Y(p.Kg)}, dot, &fill, LineHints{Width: 0, Color: ps.Color})
			}
		}
	}

	avgLine := LineHints{Width: 2 * ps.LineWidth * PtToMM}
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		if prev.Quality > 0 && pal.Sufficient(prev.Quality) && pal.Sufficient(cur.Quality) {
			avgLine.Color = pal.Color(prev.Quality)
			c.DrawLine(Point{l.X(prev.Date), l.Y(prev.Average)}, Point{l.X(cur.Date), l.Y(cur.Average)}, avgLine)
		}
	}

	if marks {
		md := ps.MarkDelta
		markLine := LineHints{Width: ps.MarkLineWidth * PtToMM, Color: ps.Color}
		for _, p := range pts {
			if !p.Measured {
				continue
			}
			x, y := l.X(p.Date), l.Y(p.Kg)
			c.DrawLine(Point{x - md, y - md}, Point{x + md, y + md}, markLine)
			c.DrawLine(Point{x + md, y - md}, Point{x - md, y + md}, markLine)
		}
	}

	if !l.DrawValueLines() {
		return
	}

	stemPoint := LineHints{Width: ps.LineWidth * PtToMM, Color: pal.Color(1)}
	white := axis.White
	for _, p := range pts {
		if !p.Measured || !p.HasAverage || !pal.Sufficient(p.Quality) {
			continue
		}
		x, y := l.X(p.Date), l.Y(p.Kg)
		c.DrawLine(Point{x, l.Y(p.Average)}, Point{x, y}, LineHints{Width: ps.LineWidth * PtToMM, Color: pal.Color(p.Quality)})
		c.DrawCircle(Point{x, y}, ps.StemPointRadius, &white, stemPoint)
	}

	var prev *Point
	var prevDay time.Time
	for _, p := range pts {
		if !p.Measured {
			continue
		}
		cur := Point{l.X(p.Date), l.Y(p.Kg)}
		if prev != nil && calendar.DaysBetween(prevDay, p.Date) == 1 {
			if a, b, ok := l.valueSegment(*prev, cur, marks); ok {
				c.DrawLine(a, b, plotLine)
			}
		}
		prev, prevDay = &cur, p.Date
	}
}

// valueSegment shortens the segment at both ends when marks are drawn so the
// line does not cover them; segments too short to shorten are dropped.
func (l *Layout) valueSegment(a, b Point, shorten bool) (Point, Point, bool) {
	if !shorten {
		return a, b, true
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	dr := math.Hypot(dx, dy)
	if dr == 0 {
		return a, b, false
	}
	f := l.opts.Plot.LineShorten / dr
	if f >= 0.5 {
		return a, b, false
	}
	sx, sy := f*dx, f*dy
	return Point{a.X + sx, a.Y + sy}, Point{b.X - sx, b.Y - sy}, true
}

func (l *Layout) renderInitials(c Canvas) {
	w, h := l.page.Width, l.page.Height
	th := TextHints{Size: LabelSize, Color: axis.Black, Anchor: AnchorCenter}
	for _, p := range []Point{
		{initialsInset, initialsInset},
		{initialsInset, h - initialsInset},
		{w - initialsInset, initialsInset},
		{w - initialsInset, h - initialsInset},
	} {
		c.DrawText(p, l.opts.Initials, th)
	}
}

func (l *Layout) renderFooter(c Canvas) {
	cat := l.opts.Catalog
	note := cat.MarkUsage
	if l.opts.History {
		note = cat.HistoryNote
	}
	c.DrawText(Point{l.page.SepWest, l.page.Height - 2.5}, note, TextHints{
		Size: footerSize, Color: axis.Black, Anchor: AnchorBottomLeft,
	})

	mid := l.page.SepNorth + l.page.InnerHeight()/2
	c.DrawText(Point{titleInset, mid}, cat.KgTitle, TextHints{
		Size: footerSize, Color: axis.Black, Rotate: 90, Anchor: AnchorCenter,
	})
	if l.bmi != nil {
		c.DrawText(Point{l.page.Width - titleInset, mid}, cat.BMIAxisTitle(l.opts.Height), TextHints{
			Size: footerSize, Color: axis.Red, Rotate: 90, Anchor: AnchorCenter,
		})
	}
}
