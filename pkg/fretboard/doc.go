// Package fretboard computes guitar fretboard diagrams.
//
// # Overview
//
// A fretboard diagram is built in two layers:
//
//   - [Diagram]: the drawing surface. It owns the [Config], derives the inside
//     bounds of the neck, draws the background, fret wires and inlay dots,
//     and keeps every added [Element] in insertion order.
//   - [Layout]: the geometry on top of a diagram. It turns fret and string
//     counts into pixel coordinates, draws the strings and the nut eagerly,
//     and maps (string, fret) pairs to positions for [Layout.AddNote].
//
// # Coordinates
//
// Strings are numbered from 1 (highest pitched, drawn on top) to N. Fret 0 is
// the open position and is pinned to the nut; every other fret f is centered
// in its cell:
//
//	x = ULX + (f + 0.5) * FretWidth   (f > 0)
//	x = NutX                          (f = 0)
//	y = TopStringY + (s - 1) * StringSep
//
// Placements outside the board fail with an INVALID_POSITION error instead
// of drawing off canvas.
//
// # Exporting
//
// Output formats are pluggable. Exporters register themselves by name, in the
// manner of image decoders:
//
//	import _ "github.com/matzehuels/fretcards/pkg/fretboard/export"
//
//	l, _ := fretboard.New(fretboard.DefaultConfig())
//	_ = l.AddNote(1, 0, "E", "")
//	err := l.ExportFile(ctx, "png", "e.png")
//
// Elements draw themselves onto a [Canvas], which the SVG and raster
// exporters implement.
package fretboard
