package export

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// basicfont.Face7x13 glyphs are 13px tall; labels are scaled from there.
const (
	baseFontSize    = 13.0
	defaultFontSize = 14.0
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterises the diagram.
func RenderPNG(d *fretboard.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}

	w, h := d.Size()
	dc := gg.NewContext(int(math.Ceil(w*r.scale)), int(math.Ceil(h*r.scale)))
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)

	d.Draw(&rasterCanvas{dc: dc, scale: r.scale})

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func exportPNG(_ context.Context, d *fretboard.Diagram, w io.Writer) error {
	data, err := RenderPNG(d)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// rasterCanvas draws onto a gg context. gg applies the context matrix to
// paths but not to line widths, so widths are scaled here.
type rasterCanvas struct {
	dc    *gg.Context
	scale float64
}

func (c *rasterCanvas) Rect(x, y, w, h float64, s fretboard.Style) {
	c.dc.DrawRectangle(x, y, w, h)
	c.fillAndStroke(s)
}

func (c *rasterCanvas) Line(x1, y1, x2, y2 float64, s fretboard.Style) {
	if s.Width <= 0 {
		return
	}
	c.dc.SetColor(parseColor(s.Color, s.Opacity))
	c.dc.SetLineWidth(s.Width * c.scale)
	c.dc.SetLineCapButt()
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *rasterCanvas) Circle(cx, cy, r float64, s fretboard.Style) {
	if r <= 0 {
		return
	}
	c.dc.DrawCircle(cx, cy, r)
	c.fillAndStroke(s)
}

func (c *rasterCanvas) Text(x, y float64, text string, s fretboard.Style) {
	size := s.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	k := size / baseFontSize

	c.dc.Push()
	defer c.dc.Pop()
	c.dc.Translate(x, y)
	c.dc.Scale(k, k)
	c.dc.SetColor(parseColor(orDefault(s.TextColor, "rgb(0,0,0)"), 1))
	c.dc.DrawStringAnchored(text, 0, 0, 0.5, 0.35)
}

func (c *rasterCanvas) fillAndStroke(s fretboard.Style) {
	if s.Color != "" {
		c.dc.SetColor(parseColor(s.Color, s.Opacity))
		c.dc.FillPreserve()
	}
	if s.StrokeColor != "" && s.StrokeWidth > 0 {
		c.dc.SetColor(parseColor(s.StrokeColor, 1))
		c.dc.SetLineWidth(s.StrokeWidth * c.scale)
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()
}

// parseColor understands the "#rgb", "#rrggbb" and "rgb(r,g,b)" forms
// accepted by errors.ValidateColor. Unparseable input yields opaque black.
func parseColor(s string, opacity float64) color.NRGBA {
	c := color.NRGBA{A: 255}
	if opacity > 0 && opacity < 1 {
		c.A = uint8(math.Round(opacity * 255))
	}

	var r, g, b int
	switch {
	case len(s) == 7 && s[0] == '#':
		if _, err := fmt.Sscanf(s, "#%2x%2x%2x", &r, &g, &b); err != nil {
			return c
		}
	case len(s) == 4 && s[0] == '#':
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return c
		}
		r, g, b = r*17, g*17, b*17
	case strings.HasPrefix(s, "rgb("):
		inner := strings.NewReplacer(" ", "", "rgb(", "", ")", "").Replace(s)
		if _, err := fmt.Sscanf(inner, "%d,%d,%d", &r, &g, &b); err != nil {
			return c
		}
	default:
		return c
	}

	c.R, c.G, c.B = clamp8(r), clamp8(g), clamp8(b)
	return c
}

func clamp8(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
