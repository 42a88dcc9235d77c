package fretboard

import (
	"slices"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// Inlay positions, counted from the nut.
var (
	singleInlays = []int{3, 5, 7, 9, 15, 17, 19, 21}
	doubleInlays = []int{12, 24}
)

// Diagram is a fretboard drawing: the neck derived from its Config plus any
// elements added afterwards, drawn in insertion order.
type Diagram struct {
	cfg      Config
	elements []Element
}

// NewDiagram validates cfg and draws the neck: background, fret wires (when
// enabled) and inlay dots.
func NewDiagram(cfg Config) (*Diagram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Diagram{cfg: cfg}

	ul, lr := d.InsideBounds()
	w, h := d.Size()
	if w < lr.X || h < lr.Y {
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"canvas %.0fx%.0f does not contain the neck (%.0f,%.0f); check x_end_offset/y_end_offset", w, h, lr.X, lr.Y)
	}

	d.elements = append(d.elements, Background{UL: ul, LR: lr, Style: cfg.Background})
	d.addFrets(ul, lr)
	d.addInlays(ul, lr)
	return d, nil
}

// Config returns the configuration the diagram was built from.
func (d *Diagram) Config() Config {
	return d.cfg
}

// InsideBounds returns the upper-left and lower-right corners of the neck.
// Every fret cell, the open one included, has width FretWidth; every gap
// between adjacent strings is FretHeight tall.
func (d *Diagram) InsideBounds() (ul, lr Point) {
	g := d.cfg.General
	ul = Point{X: g.XStart, Y: g.YStart}
	lr = Point{
		X: g.XStart + g.FretWidth*float64(d.cfg.FretCount()),
		Y: g.YStart + g.FretHeight*float64(d.cfg.StringCount()-1),
	}
	return ul, lr
}

// Size returns the canvas dimensions. One extra fret cell and one extra
// string gap of margin are reserved before the end offsets are applied.
func (d *Diagram) Size() (width, height float64) {
	g := d.cfg.General
	width = g.FretWidth*float64(d.cfg.FretCount()+2) + g.XStart + g.XEndOffset
	height = g.FretHeight*float64(d.cfg.StringCount()+1) + g.YStart + g.YEndOffset
	return width, height
}

// AddElement appends e to the drawing.
func (d *Diagram) AddElement(e Element) {
	d.elements = append(d.elements, e)
}

// Elements returns a copy of the drawn elements in order.
func (d *Diagram) Elements() []Element {
	return slices.Clone(d.elements)
}

// Draw paints every element onto c.
func (d *Diagram) Draw(c Canvas) {
	for _, e := range d.elements {
		e.Draw(c)
	}
}

func (d *Diagram) addFrets(ul, lr Point) {
	if !d.cfg.General.ShowFrets {
		return
	}
	fw := d.cfg.General.FretWidth
	for i := 1; i < d.cfg.FretCount(); i++ {
		x := ul.X + fw*float64(i+1)
		d.elements = append(d.elements, Fret{X: x, Y1: ul.Y, Y2: lr.Y, Style: d.cfg.Frets})
	}
}

func (d *Diagram) addInlays(ul, lr Point) {
	fw := d.cfg.General.FretWidth
	midY := (ul.Y + lr.Y) / 2
	height := lr.Y - ul.Y
	for fret := 1; fret < d.cfg.FretCount(); fret++ {
		x := ul.X + (float64(fret)+0.5)*fw
		switch {
		case slices.Contains(singleInlays, fret):
			d.elements = append(d.elements, NeckDot{Center: Point{X: x, Y: midY}, Style: d.cfg.NeckDots})
		case slices.Contains(doubleInlays, fret):
			// Nudged inward from the quarter lines so they stay clear of the padded outer strings.
			d.elements = append(d.elements,
				NeckDot{Center: Point{X: x, Y: ul.Y + height/3}, Style: d.cfg.NeckDots},
				NeckDot{Center: Point{X: x, Y: lr.Y - height/3}, Style: d.cfg.NeckDots},
			)
		}
	}
}
