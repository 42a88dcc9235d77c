package export

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// RenderSVG renders the diagram as a standalone SVG document.
func RenderSVG(d *fretboard.Diagram) []byte {
	w, h := d.Size()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	d.Draw(&svgCanvas{buf: &buf})
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func exportSVG(_ context.Context, d *fretboard.Diagram, w io.Writer) error {
	_, err := w.Write(RenderSVG(d))
	return err
}

type svgCanvas struct {
	buf *bytes.Buffer
}

func (c *svgCanvas) Rect(x, y, w, h float64, s fretboard.Style) {
	fmt.Fprintf(c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s%s/>`+"\n",
		x, y, w, h, orNone(s.Color), opacityAttr("fill-opacity", s.Opacity), strokeAttrs(s))
}

func (c *svgCanvas) Line(x1, y1, x2, y2 float64, s fretboard.Style) {
	if s.Width <= 0 {
		return
	}
	fmt.Fprintf(c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"%s/>`+"\n",
		x1, y1, x2, y2, orNone(s.Color), s.Width, opacityAttr("stroke-opacity", s.Opacity))
}

func (c *svgCanvas) Circle(cx, cy, r float64, s fretboard.Style) {
	if r <= 0 {
		return
	}
	fmt.Fprintf(c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"%s%s/>`+"\n",
		cx, cy, r, orNone(s.Color), opacityAttr("fill-opacity", s.Opacity), strokeAttrs(s))
}

func (c *svgCanvas) Text(x, y float64, text string, s fretboard.Style) {
	size := s.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	fmt.Fprintf(c.buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x, y, size, orDefault(s.TextColor, "black"), escapeXML(text))
}

func strokeAttrs(s fretboard.Style) string {
	if s.StrokeColor == "" || s.StrokeWidth <= 0 {
		return ""
	}
	return fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, s.StrokeColor, s.StrokeWidth)
}

// opacityAttr omits the attribute for the zero value, which means opaque.
func opacityAttr(name string, v float64) string {
	if v <= 0 || v >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, name, v)
}

func orNone(c string) string { return orDefault(c, "none") }

func orDefault(c, def string) string {
	if c == "" {
		return def
	}
	return c
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
