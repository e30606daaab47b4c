package driver

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
	"github.com/iafilius/WeightCalendarGrid/src/layout"
)

type fake struct {
	name    string
	formats []string
	err     error
}

func (f fake) Name() string      { return f.name }
func (f fake) Formats() []string { return f.formats }
func (f fake) Available() error  { return f.err }
func (f fake) Render(context.Context, *layout.Layout, string, io.Writer) error {
	return nil
}

var missing = errors.New("not installed")

func TestResolve(t *testing.T) {
	ds := []Driver{
		fake{"tikz", []string{"pdf"}, missing},
		fake{"chart", []string{"png", "svg"}, nil},
		fake{"raster", []string{"png", "jpeg"}, nil},
	}

	d, err := Resolve(ds, "")
	require.NoError(t, err)
	assert.Equal(t, "chart", d.Name())

	d, err = Resolve(ds, "Raster")
	require.NoError(t, err)
	assert.Equal(t, "raster", d.Name())

	d, err = Resolve(ds, "tikz")
	require.NoError(t, err)
	assert.Equal(t, "chart", d.Name(), "unavailable driver falls back in order")

	_, err = Resolve(ds, "cairo")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = Resolve([]Driver{fake{"tikz", []string{"pdf"}, missing}}, "tikz")
	assert.ErrorIs(t, err, errs.ErrUnavailable)
	assert.ErrorIs(t, err, missing)
}

func TestResolveFormat(t *testing.T) {
	d := fake{"raster", []string{"png", "jpeg", "webp"}, nil}
	for in, want := range map[string]string{"": "png", "JPG": "jpeg", ".webp": "webp", "png": "png"} {
		got, err := ResolveFormat(d, in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ResolveFormat(d, "pdf")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestForFormat(t *testing.T) {
	ds := []Driver{
		fake{"tikz", []string{"pdf", "tex"}, missing},
		fake{"chart", []string{"png", "svg"}, nil},
		fake{"raster", []string{"png", "jpeg"}, nil},
	}
	d, err := ForFormat(ds, "jpg")
	require.NoError(t, err)
	assert.Equal(t, "raster", d.Name())

	_, err = ForFormat(ds, "pdf")
	assert.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestRegistryOrder(t *testing.T) {
	ds := Registry(Options{LatexCommand: "definitely-not-installed-latex"})
	assert.Equal(t, []string{"tikz", "chart", "raster"}, Names(ds))

	d, err := Resolve(ds, "")
	require.NoError(t, err)
	assert.Equal(t, "chart", d.Name())

	desc := Describe(ds)
	assert.Contains(t, desc, "tikz")
	assert.Contains(t, desc, "unavailable")
	assert.Equal(t, 3, strings.Count(desc, "formats:"))
}
