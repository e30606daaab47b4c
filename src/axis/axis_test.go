package axis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

type tick struct {
	style    Style
	value    float64
	position float64
}

func collect(a *Axis) []tick {
	var out []tick
	a.Count(func(s Style, v, p float64) { out = append(out, tick{s, v, p}) })
	return out
}

func TestCount_CoarsestModulusWins(t *testing.T) {
	s20 := NewStyle(TickDefaults).Width(1.5).Ptr()
	s5 := NewStyle(TickDefaults).Width(1.0).Ptr()
	s1 := NewStyle(TickDefaults).Width(0.5).Ptr()
	a, err := New(18, 22, 1, map[int]*Style{20: s20, 5: s5, 1: s1}, Expand, 1)
	require.NoError(t, err)

	got := collect(a)
	require.Len(t, got, 5)
	want := map[float64]float64{18: 0.5, 19: 0.5, 20: 1.5, 21: 0.5, 22: 0.5}
	for _, tk := range got {
		assert.Equal(t, want[tk.value], tk.style.LineWidth, "value %v", tk.value)
	}
}

func TestCount_NilTierSuppresses(t *testing.T) {
	s5 := NewStyle(TickDefaults).Width(1.0).Ptr()
	a, err := New(0, 10, 1, map[int]*Style{5: s5, 1: nil}, Expand, 1)
	require.NoError(t, err)
	got := collect(a)
	var values []float64
	for _, tk := range got {
		values = append(values, tk.value)
	}
	// index 5 and 10 match the 5 tier; the others fall on the empty 1 tier
	assert.Equal(t, []float64{0, 5, 10}, values)
}

func TestCount_Idempotent(t *testing.T) {
	a, err := KgAxis(62, 73, Margins{Begin: 24.5, End: 24.5, Overhang: 1})
	require.NoError(t, err)
	first := collect(a)
	second := collect(a)
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].value, first[i].value)
	}
}

func TestNew_Rounding(t *testing.T) {
	one := map[int]*Style{1: NewStyle(TickDefaults).Ptr()}
	a, err := New(20.37, 23.61, 10, one, Expand, 1)
	require.NoError(t, err)
	lo, hi := a.Bounds()
	assert.InDelta(t, 20.3, lo, 1e-9)
	assert.InDelta(t, 23.7, hi, 1e-9)

	a, err = New(20.37, 23.61, 10, one, Shrink, 1)
	require.NoError(t, err)
	lo, hi = a.Bounds()
	assert.InDelta(t, 20.4, lo, 1e-9)
	assert.InDelta(t, 23.6, hi, 1e-9)

	// exact decimal bounds stay put despite float error
	a, err = New(62, 70, 10, one, Expand, 1)
	require.NoError(t, err)
	assert.Len(t, collect(a), 81)
}

func TestNew_EmptyRangeIsInternalError(t *testing.T) {
	one := map[int]*Style{1: NewStyle(TickDefaults).Ptr()}
	_, err := New(20.31, 20.39, 10, one, Shrink, 1)
	assert.ErrorIs(t, err, errs.ErrInternalLogic)
	_, err = New(70, 70, 1, one, Expand, 1)
	assert.ErrorIs(t, err, errs.ErrInternalLogic)
}

func TestKgAxis_PolicyTable(t *testing.T) {
	m := Margins{Begin: 24.5, End: 24.5, Overhang: 1}
	cases := []struct {
		min, max float64
		subdiv   int
		format   string
		ticks    int
	}{
		{50, 100, 1, "%.0f", 51},
		{50, 94, 1, "%.0f", 45},
		{50, 81, 2, "%.0f", 63},
		{60, 76, 5, "%.0f", 81},
		{62, 73, 10, "%.0f", 111},
		{70, 75, 10, "%.1f", 51},
		{70, 73, 10, "%.1f", 31},
	}
	for _, c := range cases {
		a, err := KgAxis(c.min, c.max, m)
		require.NoError(t, err)
		assert.Equal(t, c.subdiv, a.Subdivisions(), "range %v-%v", c.min, c.max)
		assert.Equal(t, c.format, a.LabelFormat, "range %v-%v", c.min, c.max)
		assert.Len(t, collect(a), c.ticks, "range %v-%v", c.min, c.max)
	}
}

func TestKgAxis_TierStyles(t *testing.T) {
	m := Margins{Begin: 24.5, End: 24.5, Overhang: 1}
	a, err := KgAxis(62, 73, m)
	require.NoError(t, err)
	byValue := map[string]Style{}
	for _, tk := range collect(a) {
		byValue[fmtValue(tk.value)] = tk.style
	}
	bold := byValue["65.0"]
	assert.True(t, bold.Bold && bold.Label)
	assert.Equal(t, 1.5, bold.LineWidth)
	assert.Equal(t, 23.5, bold.BeginInset)

	normal := byValue["63.0"]
	assert.True(t, normal.Label)
	assert.False(t, normal.Bold)

	half := byValue["63.5"]
	assert.False(t, half.Label)
	assert.Equal(t, 0.5, half.LineWidth)

	fine := byValue["63.1"]
	assert.Equal(t, 0.15, fine.LineWidth)
	assert.Equal(t, 24.5, fine.BeginInset, "short lines stop at the separator")
}

func TestBMIAxis(t *testing.T) {
	m := Margins{Begin: 24.5, End: 24.5, Overhang: 1}
	a, err := BMIAxis(62, 73, 1.75, m)
	require.NoError(t, err)
	// 11 kg at 1.75 m is about 3.6 BMI units: fifths of a unit
	assert.Equal(t, 5, a.Subdivisions())
	assert.InDelta(t, 1.75*1.75, a.Scale(), 1e-12)

	lo, hi := a.Bounds()
	assert.GreaterOrEqual(t, lo*a.Scale(), 62.0)
	assert.LessOrEqual(t, hi*a.Scale(), 73.0)

	for _, tk := range collect(a) {
		assert.InDelta(t, tk.value*1.75*1.75, tk.position, 1e-9)
		assert.Equal(t, Red, tk.style.FontColor)
		assert.Equal(t, 24.5-1-BMIInset, tk.style.BeginInset)
	}
}

func TestColorLerp(t *testing.T) {
	lo := Color{0.85, 0.85, 0.85}
	hi := Color{0, 0, 0.8}
	assert.Equal(t, lo, lo.Lerp(hi, 0))
	top := lo.Lerp(hi, 1)
	assert.InDelta(t, hi.R, top.R, 1e-12)
	assert.InDelta(t, hi.G, top.G, 1e-12)
	assert.InDelta(t, hi.B, top.B, 1e-12)
	mid := lo.Lerp(hi, 0.5)
	assert.InDelta(t, 0.425, mid.R, 1e-12)
	assert.InDelta(t, 0.825, mid.B, 1e-12)
	assert.Equal(t, "FF0000", Red.Hex())
	assert.Equal(t, uint8(204), hi.RGBA().B)
}

func fmtValue(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
