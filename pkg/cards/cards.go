// Package cards turns parameter values into flashcards.
//
// A [Generator] maps each parameter value P through a question function and
// an answer function. A [FretboardGenerator] also draws a fretboard for P,
// stores the rendered PNG as deck media and embeds it in the question.
//
// Cards go to a [Sink] (normally an open *deck.Session), to a print writer,
// or both. With neither, generation is a dry run that only returns the
// cards.
//
//	gen := cards.Generator[int]{
//	    Question: func(fret int) (string, error) { return fmt.Sprintf("Low E, fret %d?", fret), nil },
//	    Answer:   func(fret int) (string, error) { return fretboard.NoteName(fretboard.StandardTuning, 6, fret) },
//	}
//	made, err := gen.GenerateCards(ctx, d, os.Stdout, []int{0, 1, 2, 3})
package cards

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/fretcards/pkg/deck"
)

// Card is a question/answer pair with optional tags.
type Card struct {
	Question string
	Answer   string
	Tags     []string
}

// Sink receives generated cards and their media.
type Sink interface {
	AddCard(ctx context.Context, question, answer string, tags ...string) error
	SaveMediaBytes(ctx context.Context, name string, data []byte) (string, error)
}

// Opener opens a deck session for a batch. *deck.Deck implements it.
type Opener interface {
	Open(ctx context.Context) (*deck.Session, error)
}

var _ Sink = (*deck.Session)(nil)
var _ Opener = (*deck.Deck)(nil)

const (
	cardRule    = 100
	answerRule  = 50
	imageMarkup = `<br><br><img src="%s">`
)

// printQuestion writes the card header and question.
func printQuestion(w io.Writer, question string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", strings.Repeat("=", cardRule), question)
	return err
}

// printAnswer writes the separator and answer.
func printAnswer(w io.Writer, answer string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", strings.Repeat("-", answerRule), answer)
	return err
}

// PrintCard writes a card in the review layout: a long rule, the question,
// a short rule and the answer.
func PrintCard(w io.Writer, c Card) error {
	if err := printQuestion(w, c.Question); err != nil {
		return err
	}
	return printAnswer(w, c.Answer)
}

// WithImage appends an image reference to question markup.
func WithImage(question, mediaName string) string {
	return question + fmt.Sprintf(imageMarkup, mediaName)
}
