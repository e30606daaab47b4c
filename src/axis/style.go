package axis

// Style is the look of one tick tier. Line widths are in points, insets in mm.
type Style struct {
	LineWidth  float64
	Bold       bool
	Label      bool
	LineColor  Color
	FontColor  Color
	Rotate     int // label rotation in degrees
	BeginInset float64
	EndInset   float64
}

// TickDefaults are the base values for kg and time axis tiers.
var TickDefaults = Style{
	LineWidth: 0.5,
	LineColor: Black,
	FontColor: Black,
}

// BMIDefaults are the base values for BMI axis tiers.
var BMIDefaults = Style{
	LineWidth: 1.0,
	LineColor: Color{1, 0.5, 0.5},
	FontColor: Red,
}

// RangeDefaults is the style of month and year brackets.
var RangeDefaults = Style{
	LineWidth: 0.5,
	Label:     true,
	LineColor: Black,
	FontColor: Black,
}

// StyleBuilder fills a Style from a defaults table plus explicit overrides.
type StyleBuilder struct {
	s Style
}

// NewStyle starts from a copy of defaults.
func NewStyle(defaults Style) *StyleBuilder {
	return &StyleBuilder{s: defaults}
}

func (b *StyleBuilder) Width(pt float64) *StyleBuilder     { b.s.LineWidth = pt; return b }
func (b *StyleBuilder) Bold(v bool) *StyleBuilder          { b.s.Bold = v; return b }
func (b *StyleBuilder) Label(v bool) *StyleBuilder         { b.s.Label = v; return b }
func (b *StyleBuilder) LineColor(c Color) *StyleBuilder    { b.s.LineColor = c; return b }
func (b *StyleBuilder) FontColor(c Color) *StyleBuilder    { b.s.FontColor = c; return b }
func (b *StyleBuilder) Rotate(degrees int) *StyleBuilder   { b.s.Rotate = degrees; return b }
func (b *StyleBuilder) Insets(begin, end float64) *StyleBuilder {
	b.s.BeginInset, b.s.EndInset = begin, end
	return b
}

// Build returns the finished Style.
func (b *StyleBuilder) Build() Style { return b.s }

// Ptr returns a pointer to a copy, for tier maps.
func (b *StyleBuilder) Ptr() *Style {
	s := b.s
	return &s
}
