package layout

import (
	"github.com/iafilius/WeightCalendarGrid/src/axis"
)

// Point is a page position in mm.
type Point struct {
	X, Y float64
}

// LineHints describe a stroke. Width is in mm.
type LineHints struct {
	Width float64
	Color axis.Color
}

// Anchor says which point of a label's bounding box sits on the given position.
// It applies to the box after rotation.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorLeft          // west edge, vertically centred
	AnchorRight         // east edge, vertically centred
	AnchorTop           // north edge, horizontally centred
	AnchorBottom        // south edge, horizontally centred
	AnchorBottomLeft
)

// Origin returns the top left corner of a w x h box anchored at p.
func (a Anchor) Origin(p Point, w, h float64) Point {
	switch a {
	case AnchorLeft:
		return Point{p.X, p.Y - h/2}
	case AnchorRight:
		return Point{p.X - w, p.Y - h/2}
	case AnchorTop:
		return Point{p.X - w/2, p.Y}
	case AnchorBottom:
		return Point{p.X - w/2, p.Y - h}
	case AnchorBottomLeft:
		return Point{p.X, p.Y - h}
	default:
		return Point{p.X - w/2, p.Y - h/2}
	}
}

// TextHints describe a label. Size is in points, Rotate in degrees counterclockwise
// (0 or 90).
type TextHints struct {
	Size       float64
	Bold       bool
	Color      axis.Color
	Rotate     int
	Anchor     Anchor
	Background *axis.Color
}

// BoxSize returns the bounding box of a w x h text run after rotation.
func (h TextHints) BoxSize(w, ht float64) (float64, float64) {
	if h.Rotate%180 != 0 {
		return ht, w
	}
	return w, ht
}

// Orientation of a tick line.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Tick is one grid line with an optional label repeated at both ends.
type Tick struct {
	Orientation Orientation
	From, To    Point
	Style       axis.Style
	Label       string
}

// Bracket is a month or year range drawn as a horizontal line at Y between Begin
// and End, with terminators where the period boundary is exact.
type Bracket struct {
	Begin, End float64
	Y          float64
	ArrowBegin bool
	ArrowEnd   bool
	Label      string
	Style      axis.Style
}

// Primitives is what every backend draws natively.
type Primitives interface {
	FillRect(origin Point, w, h float64, c axis.Color)
	DrawLine(p1, p2 Point, h LineHints)
	// DrawCircle strokes a circle of radius r and fills it when fill is non-nil.
	DrawCircle(center Point, r float64, fill *axis.Color, h LineHints)
	DrawText(p Point, text string, h TextHints)
}

// Canvas is the render capability the orchestrator drives.
type Canvas interface {
	Primitives
	BeginPage(p Page) error
	EndPage() error
	DrawTick(t Tick)
	DrawBracketRange(b Bracket)
}

// Label placement, in mm.
const (
	LabelSize         = 10.0 // pt
	TickLabelGap      = 1.0
	DayLabelGapNorth  = 2.0
	DayLabelGapSouth  = 2.3
	BracketTerminator = 1.2
	BracketLabelLift  = 0.25
)

// Composer implements the compound Canvas operations on top of Primitives so all
// backends share tick and bracket geometry. Backends embed it.
type Composer struct {
	P Primitives
}

// DrawTick draws the line and, for labelled styles, the label beyond both ends.
func (c Composer) DrawTick(t Tick) {
	st := t.Style
	c.P.DrawLine(t.From, t.To, LineHints{Width: st.LineWidth * PtToMM, Color: st.LineColor})
	if !st.Label || t.Label == "" {
		return
	}
	th := TextHints{Size: LabelSize, Bold: st.Bold, Color: st.FontColor, Rotate: st.Rotate}
	if t.Orientation == Vertical {
		th.Anchor = AnchorBottom
		c.P.DrawText(Point{t.From.X, t.From.Y - DayLabelGapNorth}, t.Label, th)
		th.Anchor = AnchorTop
		c.P.DrawText(Point{t.To.X, t.To.Y + DayLabelGapSouth}, t.Label, th)
		return
	}
	th.Anchor = AnchorRight
	c.P.DrawText(Point{t.From.X - TickLabelGap, t.From.Y}, t.Label, th)
	th.Anchor = AnchorLeft
	c.P.DrawText(Point{t.To.X + TickLabelGap, t.To.Y}, t.Label, th)
}

// DrawBracketRange draws the range line, its terminators and a centred label on a
// light background.
func (c Composer) DrawBracketRange(b Bracket) {
	st := b.Style
	lh := LineHints{Width: st.LineWidth * PtToMM, Color: st.LineColor}
	c.P.DrawLine(Point{b.Begin, b.Y}, Point{b.End, b.Y}, lh)
	if b.ArrowBegin {
		c.P.DrawLine(Point{b.Begin, b.Y - BracketTerminator}, Point{b.Begin, b.Y + BracketTerminator}, lh)
	}
	if b.ArrowEnd {
		c.P.DrawLine(Point{b.End, b.Y - BracketTerminator}, Point{b.End, b.Y + BracketTerminator}, lh)
	}
	if b.Label == "" {
		return
	}
	bg := axis.White
	c.P.DrawText(Point{(b.Begin + b.End) / 2, b.Y - BracketLabelLift}, b.Label, TextHints{
		Size:       LabelSize,
		Bold:       st.Bold,
		Color:      st.FontColor,
		Anchor:     AnchorCenter,
		Background: &bg,
	})
}
