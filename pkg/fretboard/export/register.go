package export

import "github.com/matzehuels/fretcards/pkg/fretboard"

// Format names registered by this package.
const (
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
	FormatPreview = "preview"
)

func init() {
	fretboard.RegisterExporter(FormatSVG, fretboard.ExporterFunc(exportSVG))
	fretboard.RegisterExporter(FormatPNG, fretboard.ExporterFunc(exportPNG))
	fretboard.RegisterExporter(FormatPDF, fretboard.ExporterFunc(exportPDF))
	fretboard.RegisterExporter(FormatPreview, fretboard.ExporterFunc(Preview))
}
