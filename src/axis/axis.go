// Package axis generates the ticks of the numeric axes (kg and BMI). An Axis maps a
// value range onto integer indices and styles each index by the coarsest tier
// modulus that divides it.
package axis

import (
	"math"
	"sort"

	"github.com/iafilius/WeightCalendarGrid/src/errs"
)

// Rounding selects how the value range maps onto indices.
type Rounding int

const (
	// Expand rounds outward: floor for min, ceil for max.
	Expand Rounding = iota
	// Shrink rounds inward: ceil for min, floor for max.
	Shrink
)

// guards against 62.0*10 landing on 619.9999
const indexEpsilon = 1e-9

// Axis is immutable once built.
type Axis struct {
	minIndex     int
	maxIndex     int
	subdivisions int
	tiers        map[int]*Style
	moduli       []int // descending
	scale        float64

	// LabelFormat is the printf verb for tick labels, e.g. "%.0f".
	LabelFormat string
}

// Receiver gets one call per emitted tick: the tier style, the axis value and the
// position value (value scaled into the coordinate space of the page mapping).
type Receiver func(style Style, value, position float64)

// New builds an axis over [min,max]. A nil entry in tiers suppresses ticks of that tier.
func New(min, max float64, subdivisions int, tiers map[int]*Style, rounding Rounding, scale float64) (*Axis, error) {
	if subdivisions <= 0 {
		return nil, errs.Internal("axis subdivisions %d", subdivisions)
	}
	if len(tiers) == 0 {
		return nil, errs.Internal("axis without tiers")
	}
	lo, hi := min*float64(subdivisions), max*float64(subdivisions)
	var minI, maxI int
	if rounding == Expand {
		minI = int(math.Floor(lo + indexEpsilon))
		maxI = int(math.Ceil(hi - indexEpsilon))
	} else {
		minI = int(math.Ceil(lo - indexEpsilon))
		maxI = int(math.Floor(hi + indexEpsilon))
	}
	if minI >= maxI {
		return nil, errs.Internal("axis index range %d..%d empty for %.3f..%.3f", minI, maxI, min, max)
	}

	moduli := make([]int, 0, len(tiers))
	for m := range tiers {
		if m <= 0 {
			return nil, errs.Internal("axis tier modulus %d", m)
		}
		moduli = append(moduli, m)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(moduli)))

	return &Axis{
		minIndex:     minI,
		maxIndex:     maxI,
		subdivisions: subdivisions,
		tiers:        tiers,
		moduli:       moduli,
		scale:        scale,
		LabelFormat:  "%.0f",
	}, nil
}

func (a *Axis) Subdivisions() int { return a.subdivisions }

// Bounds returns the first and last value on the index grid.
func (a *Axis) Bounds() (float64, float64) {
	return a.value(a.minIndex), a.value(a.maxIndex)
}

func (a *Axis) Scale() float64 { return a.scale }

func (a *Axis) value(i int) float64 { return float64(i) / float64(a.subdivisions) }

// Count walks every index from min to max ascending and calls receive for each
// index whose matching tier has a style.
func (a *Axis) Count(receive Receiver) {
	for i := a.minIndex; i <= a.maxIndex; i++ {
		for _, m := range a.moduli {
			if mod(i, m) != 0 {
				continue
			}
			if st := a.tiers[m]; st != nil {
				v := a.value(i)
				receive(*st, v, v*a.scale)
			}
			break
		}
	}
}

// mod is non-negative for negative indices too.
func mod(i, m int) int {
	r := i % m
	if r < 0 {
		r += m
	}
	return r
}
