// Package chartdrv renders the grid through the go-chart renderer, which writes
// PNG through its rasterizer and SVG natively.
package chartdrv

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

// Config for the chart backend. Fonts are TrueType files tried in order before the
// renderer's built in font.
type Config struct {
	DPI       int
	Fonts     []string
	BoldFonts []string
}

type Driver struct {
	cfg Config
}

func New(cfg Config) *Driver {
	cfg.DPI = layout.ClampDPI(cfg.DPI)
	return &Driver{cfg: cfg}
}

func (d *Driver) Name() string      { return "chart" }
func (d *Driver) Formats() []string { return []string{"png", "svg"} }

// Available reports whether some font can be loaded.
func (d *Driver) Available() error {
	if _, err := chart.GetDefaultFont(); err != nil {
		return fmt.Errorf("%w: default font: %v", errs.ErrUnavailable, err)
	}
	return nil
}

func (d *Driver) Render(ctx context.Context, l *layout.Layout, format string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var provider chart.RendererProvider
	switch format {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return errs.Invalid("chart driver cannot write %q", format)
	}
	regular, err := loadFont(d.cfg.Fonts)
	if err != nil {
		return err
	}
	bold := regular
	if len(d.cfg.BoldFonts) > 0 {
		if bold, err = loadFont(d.cfg.BoldFonts); err != nil {
			return err
		}
	}
	c := &canvas{provider: provider, dpi: d.cfg.DPI, font: regular, bold: bold, out: w}
	c.Composer = layout.Composer{P: c}
	return l.Render(c)
}

// loadFont returns the first parsable font of paths, else the built in one.
func loadFont(paths []string) (*truetype.Font, error) {
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			logging.Warnf("font %s: %v", p, err)
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			logging.Warnf("font %s: %v", p, err)
			continue
		}
		logging.Debugf("using font %s", p)
		return f, nil
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("%w: default font: %v", errs.ErrUnavailable, err)
	}
	return f, nil
}

type canvas struct {
	layout.Composer
	provider   chart.RendererProvider
	r          chart.Renderer
	dpi        int
	scale      float64
	font, bold *truetype.Font
	out        io.Writer
}

func (c *canvas) BeginPage(p layout.Page) error {
	w, h := p.PixelSize(c.dpi)
	r, err := c.provider(w, h)
	if err != nil {
		return err
	}
	r.SetDPI(float64(c.dpi))
	r.SetFont(c.font)
	c.r = r
	c.scale = layout.PixelsPerMM(c.dpi)
	logging.Debugf("chart page %dx%d px at %d dpi", w, h, c.dpi)
	return nil
}

func (c *canvas) EndPage() error {
	if c.r == nil {
		return errs.Internal("chart page ended before it began")
	}
	return c.r.Save(c.out)
}

func (c *canvas) px(v float64) int { return int(math.Round(v * c.scale)) }

func toDrawing(col axis.Color) drawing.Color {
	rgba := col.RGBA()
	return drawing.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}

func (c *canvas) FillRect(o layout.Point, w, h float64, col axis.Color) {
	c.r.ResetStyle()
	x0, y0, x1, y1 := c.px(o.X), c.px(o.Y), c.px(o.X+w), c.px(o.Y+h)
	c.r.SetFillColor(toDrawing(col))
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.Fill()
}

// stroke width in pixels; hairlines stay visible
func (c *canvas) strokeWidth(mm float64) float64 {
	return math.Max(1, mm*c.scale)
}

func (c *canvas) DrawLine(a, b layout.Point, h layout.LineHints) {
	c.r.ResetStyle()
	c.r.SetStrokeColor(toDrawing(h.Color))
	c.r.SetStrokeWidth(c.strokeWidth(h.Width))
	c.r.MoveTo(c.px(a.X), c.px(a.Y))
	c.r.LineTo(c.px(b.X), c.px(b.Y))
	c.r.Stroke()
}

func (c *canvas) DrawCircle(center layout.Point, r float64, fill *axis.Color, h layout.LineHints) {
	c.r.ResetStyle()
	radius := r * c.scale
	x, y := c.px(center.X), c.px(center.Y)
	switch {
	case fill != nil && h.Width > 0:
		c.r.SetFillColor(toDrawing(*fill))
		c.r.SetStrokeColor(toDrawing(h.Color))
		c.r.SetStrokeWidth(c.strokeWidth(h.Width))
		c.r.Circle(radius, x, y)
		c.r.FillStroke()
	case fill != nil:
		c.r.SetFillColor(toDrawing(*fill))
		c.r.Circle(radius, x, y)
		c.r.Fill()
	default:
		c.r.SetStrokeColor(toDrawing(h.Color))
		c.r.SetStrokeWidth(c.strokeWidth(h.Width))
		c.r.Circle(radius, x, y)
		c.r.Stroke()
	}
}

// DrawText measures the unrotated run, places its rotated box by the anchor and
// draws from the baseline origin the renderer expects.
func (c *canvas) DrawText(p layout.Point, text string, h layout.TextHints) {
	if text == "" {
		return
	}
	c.r.ResetStyle()
	f := c.font
	if h.Bold {
		f = c.bold
	}
	c.r.SetFont(f)
	c.r.SetFontSize(h.Size)
	c.r.SetFontColor(toDrawing(h.Color))

	box := c.r.MeasureText(text)
	tw, th := float64(box.Width()), float64(box.Height())
	bw, bh := h.BoxSize(tw, th)
	anchor := layout.Point{X: p.X * c.scale, Y: p.Y * c.scale}
	o := h.Anchor.Origin(anchor, bw, bh)

	if h.Background != nil {
		pad := 0.3 * c.scale
		c.r.SetFillColor(toDrawing(*h.Background))
		x0, y0 := int(math.Round(o.X-pad)), int(math.Round(o.Y-pad))
		x1, y1 := int(math.Round(o.X+bw+pad)), int(math.Round(o.Y+bh+pad))
		c.r.MoveTo(x0, y0)
		c.r.LineTo(x1, y0)
		c.r.LineTo(x1, y1)
		c.r.LineTo(x0, y1)
		c.r.Close()
		c.r.Fill()
	}

	if h.Rotate%180 != 0 {
		// text runs upward with its glyphs left of the baseline
		c.r.SetTextRotation(float64(360-h.Rotate) * math.Pi / 180)
		c.r.Text(text, int(math.Round(o.X+bw)), int(math.Round(o.Y+bh)))
		c.r.ClearTextRotation()
		return
	}
	c.r.Text(text, int(math.Round(o.X)), int(math.Round(o.Y+bh)))
}
