// Package pipeline renders fretboard diagrams into output artifacts with
// caching.
//
// The CLI's render command and the fretboard card generator both go through
// a [Runner], so a diagram drawn twice (the same board in several plans, or a
// rerun of one plan) is rasterised once.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Render(ctx, layout.Diagram(), pipeline.Options{
//	    Formats: []string{"png", "svg"},
//	    Scale:   2,
//	})
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretcards/pkg/fretboard"
	"github.com/matzehuels/fretcards/pkg/fretboard/export"
)

const (
	// DefaultScale is the raster scale factor for PNG output.
	DefaultScale = 1.0

	// DefaultArtifactTTL is how long rendered artifacts stay cached.
	DefaultArtifactTTL = 30 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG = export.FormatSVG
	FormatPNG = export.FormatPNG
	FormatPDF = export.FormatPDF
)

// cacheable formats are pure functions of the diagram. Preview has side
// effects and is never served from cache.
var cacheable = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Options configures a render.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// TTL overrides DefaultArtifactTTL. Negative disables caching for this call.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a render.
type Result struct {
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHits lists the formats served from cache.
	CacheHits []string

	// Duration is the wall time of the whole render.
	Duration time.Duration
}

// Hit reports whether format was served from cache.
func (r *Result) Hit(format string) bool {
	return slices.Contains(r.CacheHits, format)
}

// ValidateFormat checks that format has a registered exporter.
func ValidateFormat(format string) error {
	if _, err := fretboard.LookupExporter(format); err != nil {
		return err
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return fmt.Errorf("invalid scale %v: must be positive", o.Scale)
	}
	if o.TTL == 0 {
		o.TTL = DefaultArtifactTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FormatFromPath infers an output format from a file extension.
func FormatFromPath(path string) (string, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return "", false
	}
	f := strings.ToLower(path[i+1:])
	if ValidateFormat(f) != nil {
		return "", false
	}
	return f, true
}
