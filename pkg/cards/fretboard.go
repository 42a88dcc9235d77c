package cards

import (
	"context"
	"fmt"
	"io"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
	"github.com/matzehuels/fretcards/pkg/fretboard/export"
)

// DefaultMediaName is the requested file name for fretboard images. The
// media store renames it when taken.
const DefaultMediaName = "fretboard.png"

// Renderer rasterises diagrams. *pipeline.Runner implements it with caching.
type Renderer interface {
	RenderPNG(ctx context.Context, d *fretboard.Diagram) ([]byte, error)
}

type directRenderer struct{}

func (directRenderer) RenderPNG(_ context.Context, d *fretboard.Diagram) ([]byte, error) {
	return export.RenderPNG(d)
}

// FretboardGenerator is a Generator whose questions are illustrated with a
// fretboard diagram.
type FretboardGenerator[P any] struct {
	Generator[P]

	// Fretboard draws the diagram for P.
	Fretboard func(P) (*fretboard.Layout, error)

	// Renderer defaults to an uncached PNG export.
	Renderer Renderer

	// MediaName defaults to DefaultMediaName.
	MediaName string
}

// GenerateCard builds the question, the fretboard and the answer, in that
// order. With a sink, the diagram is rendered in memory, stored as media and
// referenced from the stored question. With printOut, the card is printed
// and the diagram sent to the preview exporter between question and answer.
// The returned card carries the question without the image reference.
func (g FretboardGenerator[P]) GenerateCard(ctx context.Context, sink Sink, printOut io.Writer, p P) (Card, error) {
	if g.Fretboard == nil {
		return Card{}, errors.New(errors.ErrCodeInvalidInput, "fretboard generator has no fretboard function")
	}
	if g.Question == nil || g.Answer == nil {
		return g.Generator.GenerateCard(ctx, sink, printOut, p)
	}
	q, err := g.Question(p)
	if err != nil {
		return Card{}, fmt.Errorf("question: %w", err)
	}
	board, err := g.Fretboard(p)
	if err != nil {
		return Card{}, fmt.Errorf("fretboard: %w", err)
	}
	if board == nil {
		return Card{}, errors.New(errors.ErrCodeInvalidInput, "fretboard function returned no diagram")
	}
	a, err := g.Answer(p)
	if err != nil {
		return Card{}, fmt.Errorf("answer: %w", err)
	}
	c := Card{Question: q, Answer: a, Tags: g.tags(p)}

	if sink != nil {
		png, err := g.renderer().RenderPNG(ctx, board.Diagram())
		if err != nil {
			return Card{}, fmt.Errorf("render fretboard: %w", err)
		}
		name, err := sink.SaveMediaBytes(ctx, g.mediaName(), png)
		if err != nil {
			return Card{}, err
		}
		if err := sink.AddCard(ctx, WithImage(c.Question, name), c.Answer, c.Tags...); err != nil {
			return Card{}, err
		}
	}
	if printOut != nil {
		if err := printQuestion(printOut, c.Question); err != nil {
			return Card{}, err
		}
		if err := board.Export(ctx, export.FormatPreview, nil); err != nil {
			return Card{}, fmt.Errorf("preview fretboard: %w", err)
		}
		if err := printAnswer(printOut, c.Answer); err != nil {
			return Card{}, err
		}
	}
	return c, nil
}

// GenerateCards is the batch form of GenerateCard; see Generator.GenerateCards.
func (g FretboardGenerator[P]) GenerateCards(ctx context.Context, d Opener, printOut io.Writer, ps []P) ([]Card, error) {
	return generateCards[P](ctx, g, d, printOut, ps)
}

// GenerateCardsInto is GenerateCards for a session the caller already holds.
func (g FretboardGenerator[P]) GenerateCardsInto(ctx context.Context, sink Sink, printOut io.Writer, ps []P) ([]Card, error) {
	return generateInto[P](ctx, g, sink, printOut, ps)
}

func (g FretboardGenerator[P]) renderer() Renderer {
	if g.Renderer != nil {
		return g.Renderer
	}
	return directRenderer{}
}

func (g FretboardGenerator[P]) mediaName() string {
	if g.MediaName != "" {
		return g.MediaName
	}
	return DefaultMediaName
}
