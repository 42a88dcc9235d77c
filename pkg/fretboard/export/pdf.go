package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// RenderPDF renders the diagram as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, d *fretboard.Diagram) ([]byte, error) {
	return rsvgConvert(ctx, RenderSVG(d), "pdf")
}

func exportPDF(ctx context.Context, d *fretboard.Diagram, w io.Writer) error {
	data, err := RenderPDF(ctx, d)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
