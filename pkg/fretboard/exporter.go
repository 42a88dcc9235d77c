package fretboard

import (
	"bytes"
	"context"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// Exporter writes a diagram in one output format.
type Exporter interface {
	Export(ctx context.Context, d *Diagram, w io.Writer) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, d *Diagram, w io.Writer) error

func (f ExporterFunc) Export(ctx context.Context, d *Diagram, w io.Writer) error {
	return f(ctx, d, w)
}

var (
	exportersMu sync.RWMutex
	exporters   = map[string]Exporter{}
)

// RegisterExporter makes an exporter available under format. Registering a
// format twice replaces the earlier exporter.
func RegisterExporter(format string, e Exporter) {
	exportersMu.Lock()
	defer exportersMu.Unlock()
	exporters[strings.ToLower(format)] = e
}

// LookupExporter returns the exporter registered for format.
func LookupExporter(format string) (Exporter, error) {
	exportersMu.RLock()
	defer exportersMu.RUnlock()
	e, ok := exporters[strings.ToLower(format)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no exporter registered for %q (have %s)",
			format, strings.Join(formatsLocked(), ", "))
	}
	return e, nil
}

// Formats lists the registered formats in sorted order.
func Formats() []string {
	exportersMu.RLock()
	defer exportersMu.RUnlock()
	return formatsLocked()
}

func formatsLocked() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Export writes the diagram to w in the given format.
func (d *Diagram) Export(ctx context.Context, format string, w io.Writer) error {
	e, err := LookupExporter(format)
	if err != nil {
		return err
	}
	return e.Export(ctx, d, w)
}

// ExportBytes renders the diagram in the given format into memory.
func (d *Diagram) ExportBytes(ctx context.Context, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Export(ctx, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile renders the diagram and writes it to path. Nothing is written
// when rendering fails.
func (d *Diagram) ExportFile(ctx context.Context, format, path string) error {
	data, err := d.ExportBytes(ctx, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
