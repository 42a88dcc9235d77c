package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fretcards/internal/plan"
	"github.com/matzehuels/fretcards/pkg/cards"
	"github.com/matzehuels/fretcards/pkg/fretboard/export"
	"github.com/matzehuels/fretcards/pkg/pipeline"
)

// generateOptions holds the generate command's flags.
type generateOptions struct {
	deck    deckFlags
	dryRun  bool
	print   bool
	noCache bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate PLAN...",
		Short: "Generate flashcards from YAML plans",
		Long: `Generate flashcards from one or more YAML plan files.

Arguments may be glob patterns, including ** for recursive matches. Every
plan is loaded and validated before any card is written. Each plan is
written in a single deck session.`,
		Example: `  fretcards generate plans/low-e.yaml
  fretcards generate 'plans/**/*.yaml' --deck Guitar::Notes
  fretcards generate plans/low-e.yaml --dry-run --print`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args, opts)
		},
	}

	opts.deck.register(cmd)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "build cards without writing to a deck")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print each card and preview its fretboard")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "render diagrams without the cache")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, patterns []string, opts generateOptions) error {
	logger := loggerFromContext(ctx)

	paths, err := plan.Expand(patterns)
	if err != nil {
		return err
	}
	plans := make([]*plan.Plan, 0, len(paths))
	for _, path := range paths {
		p, err := plan.Load(path)
		if err != nil {
			return err
		}
		plans = append(plans, p)
	}
	logger.Debug("loaded plans", "count", len(plans))

	var printOut io.Writer
	if opts.print {
		printOut = stdout
		export.SetDisplayer(fileDisplayer(stdout))
		defer export.SetDisplayer(nil)
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	total := 0
	for _, p := range plans {
		n, err := c.generatePlan(ctx, p, runner, printOut, opts)
		total += n
		if err != nil {
			return fmt.Errorf("%s: %w", p.Path, err)
		}
	}
	prog.done("Generated %d cards from %d plans", total, len(plans))

	if opts.dryRun {
		printNextStep("Write them to a deck", appName+" generate "+strings.Join(patterns, " "))
	}
	return nil
}

// generatePlan builds one plan's cards and returns how many were made.
func (c *CLI) generatePlan(ctx context.Context, p *plan.Plan, r *pipeline.Runner, printOut io.Writer, opts generateOptions) (int, error) {
	logger := loggerFromContext(ctx)

	args, err := p.Args()
	if err != nil {
		return 0, err
	}
	gen, err := p.Generator(c.Config.Fretboard, r)
	if err != nil {
		return 0, err
	}

	var opener cards.Opener
	deckInfo := "dry run"
	if !opts.dryRun {
		d, err := c.newDeck(ctx, opts.deck, p.Deck)
		if err != nil {
			return 0, err
		}
		for _, src := range p.MediaPaths() {
			stored, err := d.SaveMedia(ctx, src, "")
			if err != nil {
				return 0, err
			}
			logger.Info("Copied media", "file", src, "as", stored)
		}
		opener = d
		deckInfo = fmt.Sprintf("deck %s in %s", d.Name(), d.CollectionPath())
	}

	name := filepath.Base(p.Path)
	var spin *Spinner
	if printOut == nil {
		spin = newSpinner(ctx, fmt.Sprintf("Generating %s (%d cards)...", name, len(args)))
		spin.Start()
	}

	out, err := gen.GenerateCards(ctx, opener, printOut, args)

	if spin != nil {
		if err != nil {
			spin.StopWithError(fmt.Sprintf("%s: stopped after %d of %d cards", name, len(out), len(args)))
		} else {
			spin.StopWithSuccess(fmt.Sprintf("%s: %d %s cards", name, len(out), p.Kind))
		}
	}
	if err == nil {
		printDetail("%s", deckInfo)
	}
	return len(out), err
}
