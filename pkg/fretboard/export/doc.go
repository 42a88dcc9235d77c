// Package export provides output formats for fretboard diagrams.
//
// # Overview
//
// Importing this package registers the following formats with
// [fretboard.RegisterExporter]:
//
//   - svg: Scalable vector graphics, written directly
//   - png: Raster image drawn with fogleman/gg
//   - pdf: Print-ready output (requires rsvg-convert)
//   - preview: PNG handed to a [Displayer] after rendering
//
// Basic usage:
//
//	import _ "github.com/matzehuels/fretcards/pkg/fretboard/export"
//
//	err := layout.ExportFile(ctx, "png", "fretboard.png")
//
// The renderers are also callable directly:
//
//	svg := export.RenderSVG(d)
//	png, err := export.RenderPNG(d, export.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] first generates SVG, then converts it with rsvg-convert.
// This requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Preview
//
// The preview format renders PNG bytes, writes them to the destination and
// passes them to the Displayer set with [SetDisplayer]. The CLI installs a
// displayer that saves the image under a unique temporary name and prints
// its path.
package export
