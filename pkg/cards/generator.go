package cards

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/observability"
)

// Generator builds cards from parameter values of type P.
type Generator[P any] struct {
	Question func(P) (string, error)
	Answer   func(P) (string, error)

	// Tags is optional.
	Tags func(P) []string
}

// cardMaker is implemented by every generator flavour so the batch logic is
// shared.
type cardMaker[P any] interface {
	GenerateCard(ctx context.Context, sink Sink, printOut io.Writer, p P) (Card, error)
}

func (g Generator[P]) build(p P) (Card, error) {
	if g.Question == nil || g.Answer == nil {
		return Card{}, errors.New(errors.ErrCodeInvalidInput, "generator needs both question and answer functions")
	}
	q, err := g.Question(p)
	if err != nil {
		return Card{}, fmt.Errorf("question: %w", err)
	}
	a, err := g.Answer(p)
	if err != nil {
		return Card{}, fmt.Errorf("answer: %w", err)
	}
	return Card{Question: q, Answer: a, Tags: g.tags(p)}, nil
}

func (g Generator[P]) tags(p P) []string {
	if g.Tags == nil {
		return nil
	}
	return g.Tags(p)
}

// GenerateCard builds one card. A non-nil sink receives it; a non-nil
// printOut gets the printed form.
func (g Generator[P]) GenerateCard(ctx context.Context, sink Sink, printOut io.Writer, p P) (Card, error) {
	c, err := g.build(p)
	if err != nil {
		return Card{}, err
	}
	if sink != nil {
		if err := sink.AddCard(ctx, c.Question, c.Answer, c.Tags...); err != nil {
			return Card{}, err
		}
	}
	if printOut != nil {
		if err := PrintCard(printOut, c); err != nil {
			return Card{}, err
		}
	}
	return c, nil
}

// GenerateCards builds one card per value in order. With a non-nil d the
// deck session is opened once for the whole batch and closed afterwards,
// also on failure. An empty ps returns nil without opening anything.
func (g Generator[P]) GenerateCards(ctx context.Context, d Opener, printOut io.Writer, ps []P) ([]Card, error) {
	return generateCards[P](ctx, g, d, printOut, ps)
}

// GenerateCardsInto is GenerateCards for a session the caller already holds.
func (g Generator[P]) GenerateCardsInto(ctx context.Context, sink Sink, printOut io.Writer, ps []P) ([]Card, error) {
	return generateInto[P](ctx, g, sink, printOut, ps)
}

func generateCards[P any](ctx context.Context, m cardMaker[P], d Opener, printOut io.Writer, ps []P) (cards []Card, err error) {
	if len(ps) == 0 {
		return nil, nil
	}
	if d == nil {
		return generateInto(ctx, m, nil, printOut, ps)
	}
	s, err := d.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return generateInto(ctx, m, s, printOut, ps)
}

// generateInto stops at the first failure. Cards already added stay in the
// sink and are returned alongside the error.
func generateInto[P any](ctx context.Context, m cardMaker[P], sink Sink, printOut io.Writer, ps []P) ([]Card, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	start := time.Now()
	deckName := ""
	if n, ok := sink.(interface{ Name() string }); ok {
		deckName = n.Name()
	}

	cards := make([]Card, 0, len(ps))
	var err error
	for i, p := range ps {
		if err = ctx.Err(); err != nil {
			break
		}
		var c Card
		c, err = m.GenerateCard(ctx, sink, printOut, p)
		if err != nil {
			err = fmt.Errorf("card %d: %w", i+1, err)
			break
		}
		cards = append(cards, c)
	}
	observability.Cards().OnBatchComplete(ctx, deckName, len(cards), time.Since(start), err)
	return cards, err
}
