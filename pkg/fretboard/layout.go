package fretboard

import (
	"context"
	"io"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// stringPaddingRatio is the share of one naive string gap kept free above
// the top string and below the bottom string.
const stringPaddingRatio = 1.0 / 3.0

// Layout is the pixel geometry of a diagram. New draws the strings and the
// nut immediately; notes are added with AddNote.
type Layout struct {
	diagram *Diagram

	ULX, ULY, LRX, LRY float64

	FretWidth     float64 // width of one fret cell
	StringPadding float64 // margin above the top and below the bottom string
	StringSep     float64 // vertical distance between adjacent strings
	TopStringY    float64
	NutX          float64 // horizontal center of the nut
	NutWidth      float64

	frets, strings int
}

// New builds a diagram from cfg and lays it out.
func New(cfg Config) (*Layout, error) {
	d, err := NewDiagram(cfg)
	if err != nil {
		return nil, err
	}
	return NewLayout(d), nil
}

// NewLayout derives the geometry from d's inside bounds and draws one string
// per tuning entry and the nut onto d.
func NewLayout(d *Diagram) *Layout {
	cfg := d.Config()
	ul, lr := d.InsideBounds()

	l := &Layout{
		diagram: d,
		ULX:     ul.X, ULY: ul.Y,
		LRX: lr.X, LRY: lr.Y,
		frets:   cfg.FretCount(),
		strings: cfg.StringCount(),
	}

	gaps := float64(l.strings - 1)
	l.FretWidth = (l.LRX - l.ULX) / float64(l.frets)
	naiveFretHeight := (l.LRY - l.ULY) / gaps
	l.StringPadding = naiveFretHeight * stringPaddingRatio
	l.TopStringY = l.ULY + l.StringPadding
	bottomStringY := l.LRY - l.StringPadding
	l.StringSep = (bottomStringY - l.TopStringY) / gaps

	for i := range l.strings {
		y := l.TopStringY + float64(i)*l.StringSep
		d.AddElement(String{
			Start: Point{X: l.ULX + l.FretWidth, Y: y},
			End:   Point{X: l.LRX, Y: y},
			Style: cfg.Strings,
		})
	}

	l.NutWidth = l.FretWidth / 2
	l.NutX = l.ULX + l.FretWidth - l.NutWidth/2
	nutStyle := cfg.Nut
	nutStyle.Width = l.NutWidth
	d.AddElement(Nut{
		Start: Point{X: l.NutX, Y: l.ULY - 1},
		End:   Point{X: l.NutX, Y: l.LRY + 1},
		Style: nutStyle,
	})

	return l
}

// Diagram returns the underlying drawing.
func (l *Layout) Diagram() *Diagram {
	return l.diagram
}

// StringCount returns the number of strings drawn.
func (l *Layout) StringCount() int {
	return l.strings
}

// MaxFret returns the highest fret that can hold a note.
func (l *Layout) MaxFret() int {
	return l.frets - 1
}

// Position maps a string (1 = highest pitched) and fret (0 = open) to the
// center of its note marker. Open notes sit on the nut.
func (l *Layout) Position(str, fret int) (Point, error) {
	if str < 1 || str > l.strings || fret < 0 || fret > l.MaxFret() {
		return Point{}, &errors.PositionError{String: str, Fret: fret, MaxString: l.strings, MaxFret: l.MaxFret()}
	}
	x := l.NutX
	if fret > 0 {
		x = l.ULX + (float64(fret)+0.5)*l.FretWidth
	}
	y := l.TopStringY + float64(str-1)*l.StringSep
	return Point{X: x, Y: y}, nil
}

// AddNote draws a note marker at (str, fret). An empty color selects the
// configured note color. Several notes may share a position.
func (l *Layout) AddNote(str, fret int, label, color string) error {
	p, err := l.Position(str, fret)
	if err != nil {
		return err
	}
	if err := errors.ValidateColor(color); err != nil {
		return err
	}
	style := l.diagram.Config().Note
	if color != "" {
		style.Color = color
	}
	l.diagram.AddElement(Note{Position: p, Label: label, Style: style})
	return nil
}

// Notes returns the note markers added so far, in order.
func (l *Layout) Notes() []Note {
	var notes []Note
	for _, e := range l.diagram.elements {
		if n, ok := e.(Note); ok {
			notes = append(notes, n)
		}
	}
	return notes
}

// Export writes the diagram to w in the given format.
func (l *Layout) Export(ctx context.Context, format string, w io.Writer) error {
	return l.diagram.Export(ctx, format, w)
}

// ExportFile writes the diagram to path in the given format.
func (l *Layout) ExportFile(ctx context.Context, format, path string) error {
	return l.diagram.ExportFile(ctx, format, path)
}
