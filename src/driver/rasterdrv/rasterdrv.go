// Package rasterdrv draws the grid into an in-memory RGBA image with the x/image
// vector rasterizer and encodes it as PNG, JPEG or WebP.
package rasterdrv

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

const (
	jpegQuality = 92
	webpQuality = 90
	// segments of a full circle outline
	circleSegments = 48
)

type Config struct {
	DPI int
}

type Driver struct {
	cfg Config
}

func New(cfg Config) *Driver {
	cfg.DPI = layout.ClampDPI(cfg.DPI)
	return &Driver{cfg: cfg}
}

func (d *Driver) Name() string      { return "raster" }
func (d *Driver) Formats() []string { return []string{"png", "jpeg", "webp"} }
func (d *Driver) Available() error  { return nil }

func (d *Driver) Render(ctx context.Context, l *layout.Layout, format string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch format {
	case "png", "jpeg", "webp":
	default:
		return errs.Invalid("raster driver cannot write %q", format)
	}
	c := &canvas{dpi: d.cfg.DPI}
	c.Composer = layout.Composer{P: c}
	if err := l.Render(c); err != nil {
		return err
	}
	return encode(w, c.img, format)
}

func encode(w io.Writer, img *image.RGBA, format string) error {
	switch format {
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case "webp":
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, webpQuality)
		if err != nil {
			return fmt.Errorf("webp options: %w", err)
		}
		return webp.Encode(w, img, opts)
	}
	return errs.Internal("unhandled raster format %q", format)
}

// Image renders l and returns the page without encoding it.
func (d *Driver) Image(l *layout.Layout) (*image.RGBA, error) {
	c := &canvas{dpi: d.cfg.DPI}
	c.Composer = layout.Composer{P: c}
	if err := l.Render(c); err != nil {
		return nil, err
	}
	return c.img, nil
}

type canvas struct {
	layout.Composer
	dpi   int
	scale float64
	img   *image.RGBA
	z     vector.Rasterizer
}

func (c *canvas) BeginPage(p layout.Page) error {
	w, h := p.PixelSize(c.dpi)
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.scale = layout.PixelsPerMM(c.dpi)
	logging.Debugf("raster page %dx%d px at %d dpi", w, h, c.dpi)
	return nil
}

func (c *canvas) EndPage() error {
	if c.img == nil {
		return errs.Internal("raster page ended before it began")
	}
	return nil
}

func rgba(col axis.Color) color.RGBA { return col.RGBA() }

type pt struct{ x, y float64 }

// fill rasterizes one closed polygon given in pixels. The coverage mask only spans
// the polygon's bounding box so thousands of small shapes stay cheap.
func (c *canvas) fill(poly []pt, col color.RGBA) {
	if len(poly) < 3 {
		return
	}
	minX, minY, maxX, maxY := poly[0].x, poly[0].y, poly[0].x, poly[0].y
	for _, p := range poly[1:] {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1)
	clip := box.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Src
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.z.MoveTo(float32(poly[0].x-ox), float32(poly[0].y-oy))
	for _, p := range poly[1:] {
		c.z.LineTo(float32(p.x-ox), float32(p.y-oy))
	}
	c.z.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	c.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, clip, image.NewUniform(col), image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

func (c *canvas) FillRect(o layout.Point, w, h float64, col axis.Color) {
	x0, y0 := o.X*c.scale, o.Y*c.scale
	x1, y1 := (o.X+w)*c.scale, (o.Y+h)*c.scale
	c.fill([]pt{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, rgba(col))
}

// strokePx keeps hairlines at one pixel.
func (c *canvas) strokePx(mm float64) float64 {
	return math.Max(1, mm*c.scale)
}

func (c *canvas) DrawLine(a, b layout.Point, h layout.LineHints) {
	ax, ay, bx, by := a.X*c.scale, a.Y*c.scale, b.X*c.scale, b.Y*c.scale
	dx, dy := bx-ax, by-ay
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	hw := c.strokePx(h.Width) / 2
	// butt ends extended by half the width, like a square cap
	ux, uy := dx/n*hw, dy/n*hw
	nx, ny := -uy, ux
	c.fill([]pt{
		{ax - ux + nx, ay - uy + ny},
		{bx + ux + nx, by + uy + ny},
		{bx + ux - nx, by + uy - ny},
		{ax - ux - nx, ay - uy - ny},
	}, rgba(h.Color))
}

func circle(cx, cy, r float64) []pt {
	out := make([]pt, circleSegments)
	for i := range out {
		a := 2 * math.Pi * float64(i) / circleSegments
		out[i] = pt{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return out
}

func (c *canvas) DrawCircle(center layout.Point, r float64, fill *axis.Color, h layout.LineHints) {
	cx, cy, rr := center.X*c.scale, center.Y*c.scale, r*c.scale
	if h.Width > 0 {
		hw := c.strokePx(h.Width) / 2
		c.fill(circle(cx, cy, rr+hw), rgba(h.Color))
		if fill != nil {
			c.fill(circle(cx, cy, math.Max(0, rr-hw)), rgba(*fill))
		} else {
			// hollow ring; punch the inside back to the page colour
			c.fill(circle(cx, cy, math.Max(0, rr-hw)), rgba(axis.White))
		}
		return
	}
	if fill != nil {
		c.fill(circle(cx, cy, rr), rgba(*fill))
	}
}

// DrawText rasterizes the run with the fixed 7x13 face, scales it to the
// requested point size and rotates it when asked.
func (c *canvas) DrawText(p layout.Point, text string, h layout.TextHints) {
	if text == "" {
		return
	}
	glyphs := textImage(text, h.Bold, rgba(h.Color))
	target := int(math.Round(layout.FontPixels(h.Size, c.dpi)))
	var run image.Image = glyphs
	if target != glyphs.Bounds().Dy() {
		run = imaging.Resize(glyphs, 0, target, imaging.Linear)
	}
	if h.Rotate%180 != 0 {
		run = imaging.Rotate90(run)
	}
	b := run.Bounds()
	o := h.Anchor.Origin(layout.Point{X: p.X * c.scale, Y: p.Y * c.scale}, float64(b.Dx()), float64(b.Dy()))
	dst := image.Rect(0, 0, b.Dx(), b.Dy()).Add(image.Pt(int(math.Round(o.X)), int(math.Round(o.Y))))

	if h.Background != nil {
		pad := int(math.Ceil(0.3 * c.scale))
		draw.Draw(c.img, dst.Inset(-pad), image.NewUniform(rgba(*h.Background)), image.Point{}, draw.Src)
	}
	draw.Draw(c.img, dst, run, b.Min, draw.Over)
}

// textImage draws text onto a transparent image exactly one line of the face high.
func textImage(text string, bold bool, col color.RGBA) *image.NRGBA {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	if bold {
		w++
	}
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d.Dst = img
	d.Src = image.NewUniform(col)
	d.Dot = fixed.Point26_6{X: 0, Y: m.Ascent}
	d.DrawString(text)
	if bold {
		d.Dot = fixed.Point26_6{X: fixed.I(1), Y: m.Ascent}
		d.DrawString(text)
	}
	return img
}
