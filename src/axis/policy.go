package axis

// Margins are the page separators the axis lines run between, in mm.
type Margins struct {
	Begin    float64
	End      float64
	Overhang float64
}

type labelKind int

const (
	labelNone labelKind = iota
	labelNormal
	labelBold
)

type insetKind int

const (
	// long lines overhang into the margin
	insetLong insetKind = iota
	insetShort
)

type kgTierSpec struct {
	modulus int
	inset   insetKind
	width   float64
	label   labelKind
}

type kgPolicy struct {
	above        float64 // range in kg strictly greater than this
	subdivisions int
	format       string
	tiers        []kgTierSpec
}

func kg5of1(m int) kgTierSpec  { return kgTierSpec{m, insetLong, 1.5, labelBold} }
func kg1of1(m int) kgTierSpec  { return kgTierSpec{m, insetLong, 1.0, labelNormal} }
func kg1of2(m int) kgTierSpec  { return kgTierSpec{m, insetLong, 0.5, labelNone} }
func kg1of10(m int) kgTierSpec { return kgTierSpec{m, insetShort, 0.15, labelNone} }

// Ordered by breakpoint, first match wins; the last row catches everything.
var kgPolicies = []kgPolicy{
	{48, 1, "%.0f", []kgTierSpec{kg5of1(20), kg1of1(5), kg1of2(1)}},
	{43, 1, "%.0f", []kgTierSpec{kg5of1(5), kg1of1(1)}},
	{30, 2, "%.0f", []kgTierSpec{kg5of1(10), kg1of1(2), kg1of10(1)}},
	{15, 5, "%.0f", []kgTierSpec{kg5of1(25), kg1of1(5), kg1of10(1)}},
	{8, 10, "%.0f", []kgTierSpec{kg5of1(50), kg1of1(10), kg1of2(5), kg1of10(1)}},
	{4, 10, "%.1f", []kgTierSpec{
		{10, insetLong, 1.5, labelBold},
		{5, insetLong, 1.0, labelNormal},
		{1, insetLong, 0.25, labelNone},
	}},
	{-1, 10, "%.1f", []kgTierSpec{
		{10, insetLong, 1.5, labelBold},
		{5, insetLong, 1.0, labelBold},
		{1, insetLong, 0.25, labelNormal},
	}},
}

type bmiTierSpec struct {
	modulus int
	width   float64
	lc      float64 // line colour depth, 0 white .. 1 red
	label   labelKind
}

type bmiPolicy struct {
	above        float64 // range in BMI units
	subdivisions int
	tiers        []bmiTierSpec
}

var bmiPolicies = []bmiPolicy{
	{15, 1, []bmiTierSpec{{5, 1.5, 0.6, labelBold}, {1, 1.0, 0.4, labelNormal}}},
	{8, 2, []bmiTierSpec{{10, 2.0, 0.6, labelBold}, {2, 1.5, 0.4, labelNormal}, {1, 0.6, 0.4, labelNone}}},
	{5, 2, []bmiTierSpec{{10, 2.0, 0.6, labelBold}, {2, 1.5, 0.6, labelBold}, {1, 1.0, 0.4, labelNormal}}},
	{1, 5, []bmiTierSpec{{25, 2.0, 0.6, labelBold}, {5, 1.5, 0.6, labelBold}, {1, 1.0, 0.4, labelNormal}}},
	{-1, 10, []bmiTierSpec{{10, 1.5, 0.6, labelBold}, {5, 1.5, 0.6, labelBold}, {1, 1.0, 0.4, labelNormal}}},
}

// BMIInset is how far the BMI lines stay clear of the kg lines at both ends.
const BMIInset = 6.5

func pickKgPolicy(rangeKg float64) kgPolicy {
	for _, p := range kgPolicies {
		if rangeKg > p.above {
			return p
		}
	}
	return kgPolicies[len(kgPolicies)-1]
}

func pickBMIPolicy(rangeBMI float64) bmiPolicy {
	for _, p := range bmiPolicies {
		if rangeBMI > p.above {
			return p
		}
	}
	return bmiPolicies[len(bmiPolicies)-1]
}

// KgAxis builds the weight axis for [minKg,maxKg], choosing density by the range width.
func KgAxis(minKg, maxKg float64, m Margins) (*Axis, error) {
	p := pickKgPolicy(maxKg - minKg)
	tiers := make(map[int]*Style, len(p.tiers))
	for _, t := range p.tiers {
		ofs := m.Overhang
		if t.inset == insetShort {
			ofs = 0
		}
		tiers[t.modulus] = NewStyle(TickDefaults).
			Width(t.width).
			Bold(t.label == labelBold).
			Label(t.label != labelNone).
			Insets(m.Begin-ofs, m.End-ofs).
			Ptr()
	}
	a, err := New(minKg, maxKg, p.subdivisions, tiers, Expand, 1.0)
	if err != nil {
		return nil, err
	}
	a.LabelFormat = p.format
	return a, nil
}

// BMIAxis builds the BMI axis for a kg window at the given height. Values are BMI,
// positions are kg.
func BMIAxis(minKg, maxKg, height float64, m Margins) (*Axis, error) {
	h2 := height * height
	p := pickBMIPolicy((maxKg - minKg) / h2)
	ofs := m.Overhang + BMIInset
	tiers := make(map[int]*Style, len(p.tiers))
	for _, t := range p.tiers {
		tiers[t.modulus] = NewStyle(BMIDefaults).
			Width(t.width).
			LineColor(Color{1, 1 - t.lc, 1 - t.lc}).
			Bold(t.label == labelBold).
			Label(t.label != labelNone).
			Insets(m.Begin-ofs, m.End-ofs).
			Ptr()
	}
	a, err := New(minKg/h2, maxKg/h2, p.subdivisions, tiers, Shrink, h2)
	if err != nil {
		return nil, err
	}
	a.LabelFormat = "%.1f"
	return a, nil
}
