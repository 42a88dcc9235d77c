package fretboard

// Point is a position in diagram pixels. Y grows downwards.
type Point struct {
	X, Y float64
}

// Canvas is a drawing surface. The SVG and raster exporters implement it so
// that every element is described once.
type Canvas interface {
	// Rect draws a rectangle filled with s.Color and outlined with s.StrokeColor.
	Rect(x, y, w, h float64, s Style)
	// Line draws a straight line of color s.Color and width s.Width.
	Line(x1, y1, x2, y2 float64, s Style)
	// Circle draws a disc filled with s.Color and outlined with s.StrokeColor.
	Circle(cx, cy, r float64, s Style)
	// Text draws s centered on (x, y) in s.TextColor.
	Text(x, y float64, text string, s Style)
}

// Element is anything that can be drawn on a diagram.
type Element interface {
	Draw(c Canvas)
}

// Background is the neck itself, spanning the inside bounds.
type Background struct {
	UL, LR Point
	Style  Style
}

func (b Background) Draw(c Canvas) {
	c.Rect(b.UL.X, b.UL.Y, b.LR.X-b.UL.X, b.LR.Y-b.UL.Y, b.Style)
}

// Fret is a fret wire.
type Fret struct {
	X, Y1, Y2 float64
	Style     Style
}

func (f Fret) Draw(c Canvas) {
	c.Line(f.X, f.Y1, f.X, f.Y2, f.Style)
}

// NeckDot is an inlay marker.
type NeckDot struct {
	Center Point
	Style  Style
}

func (d NeckDot) Draw(c Canvas) {
	c.Circle(d.Center.X, d.Center.Y, d.Style.Radius, d.Style)
}

// String is a horizontal guitar string.
type String struct {
	Start, End Point
	Style      Style
}

func (s String) Draw(c Canvas) {
	c.Line(s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.Style)
}

// Nut is the bar between the open position and fret 1. Its thickness is
// Style.Width.
type Nut struct {
	Start, End Point
	Style      Style
}

func (n Nut) Draw(c Canvas) {
	c.Line(n.Start.X, n.Start.Y, n.End.X, n.End.Y, n.Style)
}

// Note is a fretted or open note marker with an optional label.
type Note struct {
	Position Point
	Label    string
	Style    Style
}

func (n Note) Draw(c Canvas) {
	c.Circle(n.Position.X, n.Position.Y, n.Style.Radius, n.Style)
	if n.Label != "" {
		c.Text(n.Position.X, n.Position.Y, n.Label, n.Style)
	}
}
