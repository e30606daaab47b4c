package rasterdrv

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/WeightCalendarGrid/src/axis"
	"github.com/iafilius/WeightCalendarGrid/src/calendar"
	"github.com/iafilius/WeightCalendarGrid/src/fit"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	l, err := layout.New(layout.Options{
		Height:   1.75,
		Kg:       fit.KgRange{Min: 62, Max: 73},
		Dates:    calendar.DateRange{Begin: calendar.Day(2015, time.November, 22), End: calendar.Day(2016, time.January, 17)},
		Initials: "JD",
	})
	require.NoError(t, err)
	return l
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{DPI: 100}).Render(context.Background(), testLayout(t), "png", &buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	w, h := layout.A4Landscape.PixelSize(100)
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
}

func TestRenderJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{DPI: 50}).Render(context.Background(), testLayout(t), "jpeg", &buf))
	_, err := jpeg.Decode(&buf)
	require.NoError(t, err)
}

func TestRenderRejectsFormat(t *testing.T) {
	assert.Error(t, New(Config{}).Render(context.Background(), testLayout(t), "svg", &bytes.Buffer{}))
}

func TestImageDrawsGrid(t *testing.T) {
	const dpi = 127 // 5 px per mm
	img, err := New(Config{DPI: dpi}).Image(testLayout(t))
	require.NoError(t, err)
	l := testLayout(t)

	white := color.RGBA{255, 255, 255, 255}
	assert.Equal(t, white, img.RGBAAt(2, 2))

	// first day line runs through the middle of the grid
	x := int(l.X(l.Dates().Begin) * 5)
	y := int(100 * 5.0)
	found := false
	for dx := -1; dx <= 1; dx++ {
		if img.RGBAAt(x+dx, y) != white {
			found = true
		}
	}
	assert.True(t, found, "no vertical line near x=%d", x)
}

func TestCanvasPrimitives(t *testing.T) {
	c := &canvas{dpi: 254}
	require.NoError(t, c.BeginPage(layout.Page{Width: 10, Height: 10}))
	assert.Equal(t, image.Rect(0, 0, 100, 100), c.img.Bounds())

	c.FillRect(layout.Point{}, 10, 10, axis.White)
	c.DrawLine(layout.Point{X: 1, Y: 5}, layout.Point{X: 9, Y: 5}, layout.LineHints{Width: 0.4, Color: axis.Black})
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c.img.RGBAAt(50, 50))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(50, 40))

	red := axis.Red
	c.DrawCircle(layout.Point{X: 5, Y: 2}, 1, &red, layout.LineHints{})
	assert.Equal(t, red.RGBA(), c.img.RGBAAt(50, 20))

	// shapes hanging off the page are clipped, not shifted
	c.FillRect(layout.Point{X: -5, Y: -5}, 6, 6, axis.Black)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c.img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, c.img.RGBAAt(15, 15))
	require.NoError(t, c.EndPage())
}

func TestTextImage(t *testing.T) {
	img := textImage("AB", false, color.RGBA{0, 0, 0, 255})
	assert.Equal(t, 14, img.Bounds().Dx())
	assert.Equal(t, 13, img.Bounds().Dy())
	assert.Equal(t, 15, textImage("AB", true, color.RGBA{}).Bounds().Dx())
}
