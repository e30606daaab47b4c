package layout

import "math"

// PtToMM converts typographic points to millimetres.
const PtToMM = 25.4 / 72

// Page is the physical page in mm. The origin is the top left corner, y grows downward.
type Page struct {
	Width    float64
	Height   float64
	SepWest  float64
	SepEast  float64
	SepNorth float64
	SepSouth float64
	// Overhang keeps the outermost lines off the separator edge.
	Overhang float64
}

// A4Landscape leaves room for ISO punch holes in the north margin.
var A4Landscape = Page{
	Width:    297,
	Height:   210,
	SepWest:  24.5,
	SepEast:  24.5,
	SepNorth: 20,
	SepSouth: 24,
	Overhang: 1,
}

// InnerWidth is the grid width between the west and east separators.
func (p Page) InnerWidth() float64 { return p.Width - p.SepWest - p.SepEast }

// InnerHeight is the grid height between the north and south separators.
func (p Page) InnerHeight() float64 { return p.Height - p.SepNorth - p.SepSouth }

// DefaultDPI is used by raster backends when none is configured.
const DefaultDPI = 150

// MinDPI and MaxDPI bound the configurable raster resolution.
const (
	MinDPI = 36
	MaxDPI = 600
)

// ClampDPI keeps a requested resolution within the supported range; 0 means default.
func ClampDPI(dpi int) int {
	switch {
	case dpi <= 0:
		return DefaultDPI
	case dpi < MinDPI:
		return MinDPI
	case dpi > MaxDPI:
		return MaxDPI
	}
	return dpi
}

// PixelsPerMM at a given resolution.
func PixelsPerMM(dpi int) float64 { return float64(dpi) / 25.4 }

// PixelSize returns the raster size of the page at dpi.
func (p Page) PixelSize(dpi int) (int, int) {
	s := PixelsPerMM(dpi)
	return int(math.Round(p.Width * s)), int(math.Round(p.Height * s))
}

// FontPixels converts a font size in points to pixels at dpi, never below 1.
func FontPixels(pt float64, dpi int) float64 {
	return math.Max(1, pt*float64(dpi)/72)
}
