package axis

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGB colour with channels in [0,1].
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
	Red   = Color{1, 0, 0}
)

// Lerp interpolates linearly per channel; f=0 gives c, f=1 gives to.
func (c Color) Lerp(to Color, f float64) Color {
	return Color{
		R: c.R + (to.R-c.R)*f,
		G: c.G + (to.G-c.G)*f,
		B: c.B + (to.B-c.B)*f,
	}
}

// RGBA converts to an opaque 8 bit colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 0xff}
}

// Hex formats the colour as RRGGBB, e.g. for xcolor's HTML model.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
