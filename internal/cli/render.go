package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
	"github.com/matzehuels/fretcards/pkg/fretboard/export"
	"github.com/matzehuels/fretcards/pkg/pipeline"
)

// defaultOutput is the base name used when -o is not given.
const defaultOutput = "fretboard"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "png", "pdf", "preview"
	notes     []string // note specs "string:fret[:label[:color]]"
	scale     float64  // PNG scale factor
	firstFret int      // overrides fretboard.general.first_fret when >= 0
	lastFret  int      // overrides fretboard.general.last_fret when >= 0
	noCache   bool
}

// noteSpec is one parsed --note flag.
type noteSpec struct {
	str, fret    int
	label, color string
}

// renderCommand creates the render command for drawing a single fretboard.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{firstFret: -1, lastFret: -1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a fretboard diagram to SVG, PNG or PDF",
		Long: `Render one fretboard diagram with the given notes.

The format is taken from --format, else from the extension of --output,
else SVG. Several comma-separated formats write one file each next to the
output base path. The preview format writes a temporary PNG and prints its
path.`,
		Example: `  fretcards render -o e-string.svg --note 1:0:E --note 6:0:E
  fretcards render -o chord --format svg,png --scale 2 --note 5:3:C --note 4:2:E --note 2:1:C
  fretcards render --format preview --note 3:2:A`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, preview (comma-separated)")
	cmd.Flags().StringArrayVarP(&opts.notes, "note", "n", nil, "note as string:fret[:label[:color]] (repeatable)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVar(&opts.firstFret, "first-fret", opts.firstFret, "first fret drawn (default from config)")
	cmd.Flags().IntVar(&opts.lastFret, "last-fret", opts.lastFret, "last fret drawn (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render without the cache")

	return cmd
}

// runRender draws the board, renders every requested format and writes the
// files.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	formats, err := resolveFormats(opts.output, opts.formats)
	if err != nil {
		return err
	}
	notes := make([]noteSpec, len(opts.notes))
	for i, s := range opts.notes {
		if notes[i], err = parseNote(s); err != nil {
			return err
		}
	}

	cfg := c.Config.Fretboard
	if opts.firstFret >= 0 {
		cfg.General.FirstFret = opts.firstFret
	}
	if opts.lastFret >= 0 {
		cfg.General.LastFret = opts.lastFret
	}
	board, err := fretboard.New(cfg)
	if err != nil {
		return err
	}
	for _, n := range notes {
		if err := board.AddNote(n.str, n.fret, n.label, n.color); err != nil {
			return err
		}
	}
	logger.Debugf("Drawing %d frets, %d strings, %d notes", cfg.FretCount(), cfg.StringCount(), len(notes))

	if slices.Contains(formats, export.FormatPreview) {
		export.SetDisplayer(fileDisplayer(stdout))
		defer export.SetDisplayer(nil)
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	result, err := runner.Render(ctx, board.Diagram(), pipeline.Options{
		Formats: formats,
		Scale:   opts.scale,
		TTL:     c.Config.Cache.TTL,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	for _, format := range formats {
		if format == export.FormatPreview {
			continue
		}
		path := outputPath(opts.output, format, len(formats))
		data := result.Artifacts[format]
		if err := writeOutput(path, data); err != nil {
			return err
		}
		printFile(path)
		printStats(len(notes), len(data), result.Hit(format))
	}
	logger.Debugf("Rendered %d formats in %s", len(formats), result.Duration)
	return nil
}

// resolveFormats picks explicit formats, else the output extension, else SVG.
func resolveFormats(output string, formats []string) ([]string, error) {
	if len(formats) == 0 {
		if f, ok := pipeline.FormatFromPath(output); ok {
			return []string{f}, nil
		}
		return []string{pipeline.FormatSVG}, nil
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(f)
		if err := pipeline.ValidateFormat(f); err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// outputPath returns output itself for a single format whose extension
// matches, and base.format otherwise.
func outputPath(output, format string, count int) string {
	if output == "" {
		return defaultOutput + "." + format
	}
	if f, ok := pipeline.FormatFromPath(output); ok {
		if count == 1 && f == format {
			return output
		}
		output = strings.TrimSuffix(output, filepath.Ext(output))
	}
	return output + "." + format
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseNote parses "string:fret[:label[:color]]".
func parseNote(s string) (noteSpec, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 2 {
		return noteSpec{}, errors.New(errors.ErrCodeInvalidInput, "note %q: want string:fret[:label[:color]]", s)
	}
	str, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return noteSpec{}, errors.New(errors.ErrCodeInvalidInput, "note %q: string %q is not a number", s, parts[0])
	}
	fret, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return noteSpec{}, errors.New(errors.ErrCodeInvalidInput, "note %q: fret %q is not a number", s, parts[1])
	}
	n := noteSpec{str: str, fret: fret}
	if len(parts) > 2 {
		n.label = parts[2]
	}
	if len(parts) > 3 {
		n.color = parts[3]
	}
	return n, nil
}
