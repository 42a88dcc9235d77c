package cards

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fretcards/pkg/collection"
	"github.com/matzehuels/fretcards/pkg/deck"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// recordingSink keeps cards and media in memory.
type recordingSink struct {
	cards []Card
	media map[string][]byte
	fail  error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{media: map[string][]byte{}}
}

func (s *recordingSink) AddCard(_ context.Context, q, a string, tags ...string) error {
	if s.fail != nil {
		return s.fail
	}
	s.cards = append(s.cards, Card{Question: q, Answer: a, Tags: tags})
	return nil
}

func (s *recordingSink) SaveMediaBytes(_ context.Context, name string, data []byte) (string, error) {
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%d_%s", i, name)
		}
		if _, taken := s.media[candidate]; !taken {
			s.media[candidate] = data
			return candidate, nil
		}
	}
}

type countingCollection struct {
	*collection.Collection
	closes *int
}

func (c countingCollection) Close() error {
	*c.closes++
	return c.Collection.Close()
}

// testDeck returns a deck on a temp collection and counters for opens and
// closes.
func testDeck(t *testing.T) (*deck.Deck, *int, *int) {
	t.Helper()
	opens, closes := new(int), new(int)
	d, err := deck.New(deck.Options{
		Name:           "Guitar",
		CollectionPath: filepath.Join(t.TempDir(), "collection.db"),
		Open: func(ctx context.Context, path string) (deck.Collection, error) {
			col, err := collection.Open(ctx, path)
			if err != nil {
				return nil, err
			}
			*opens++
			return countingCollection{Collection: col, closes: closes}, nil
		},
	})
	require.NoError(t, err)
	return d, opens, closes
}

func deckNotes(t *testing.T, d *deck.Deck) []collection.Note {
	t.Helper()
	ctx := context.Background()
	col, err := collection.Open(ctx, d.CollectionPath())
	require.NoError(t, err)
	defer col.Close()
	id, err := col.DeckID(ctx, d.Name())
	require.NoError(t, err)
	notes, err := col.Notes(ctx, id)
	require.NoError(t, err)
	return notes
}

func fretGen() Generator[int] {
	return Generator[int]{
		Question: func(f int) (string, error) { return fmt.Sprintf("Low E string, fret %d?", f), nil },
		Answer: func(f int) (string, error) {
			return fretboard.NoteName(fretboard.StandardTuning, 6, f)
		},
	}
}

func TestGenerateCardToSinkAndPrint(t *testing.T) {
	ctx := context.Background()
	sink := newRecordingSink()
	var out bytes.Buffer

	c, err := fretGen().GenerateCard(ctx, sink, &out, 5)
	require.NoError(t, err)
	assert.Equal(t, Card{Question: "Low E string, fret 5?", Answer: "A"}, c)
	require.Len(t, sink.cards, 1)
	assert.Equal(t, c, sink.cards[0])

	want := strings.Repeat("=", 100) + "\nLow E string, fret 5?\n" + strings.Repeat("-", 50) + "\nA\n"
	assert.Equal(t, want, out.String())
}

func TestGenerateCardDryRun(t *testing.T) {
	c, err := fretGen().GenerateCard(context.Background(), nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "E", c.Answer)
}

func TestGenerateCardErrors(t *testing.T) {
	ctx := context.Background()
	boom := stderrors.New("boom")

	g := fretGen()
	g.Answer = func(int) (string, error) { return "", boom }
	sink := newRecordingSink()
	_, err := g.GenerateCard(ctx, sink, nil, 1)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sink.cards, "nothing is added when the answer fails")

	_, err = Generator[int]{}.GenerateCard(ctx, nil, nil, 1)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestGenerateCardTags(t *testing.T) {
	g := fretGen()
	g.Tags = func(f int) []string { return []string{"string6", fmt.Sprintf("fret%d", f)} }
	sink := newRecordingSink()
	_, err := g.GenerateCard(context.Background(), sink, nil, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"string6", "fret7"}, sink.cards[0].Tags)
}

func TestGenerateCardsEmptyHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	d, opens, _ := testDeck(t)
	var out bytes.Buffer

	got, err := fretGen().GenerateCards(ctx, d, &out, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, *opens, "deck must not be opened for an empty batch")
	assert.Zero(t, out.Len())

	got, err = fretGen().GenerateCards(ctx, nil, nil, []int{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGenerateCardsOpensOnce(t *testing.T) {
	ctx := context.Background()
	d, opens, closes := testDeck(t)

	got, err := fretGen().GenerateCards(ctx, d, nil, []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, 1, *opens)
	assert.Equal(t, 1, *closes)
	assert.False(t, d.IsOpen())

	notes := deckNotes(t, d)
	require.Len(t, notes, 4)
	for i, want := range []string{"E", "F", "F#", "G"} {
		assert.Equal(t, fmt.Sprintf("Low E string, fret %d?", i), notes[i].Fields[0])
		assert.Equal(t, want, notes[i].Fields[1])
	}
}

func TestGenerateCardsPartialFailure(t *testing.T) {
	ctx := context.Background()
	d, _, closes := testDeck(t)

	g := fretGen()
	g.Answer = func(f int) (string, error) {
		if f == 2 {
			return "", stderrors.New("no answer")
		}
		return fretboard.NoteName(fretboard.StandardTuning, 6, f)
	}

	got, err := g.GenerateCards(ctx, d, nil, []int{0, 1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card 3")
	assert.Len(t, got, 2)
	assert.Equal(t, 1, *closes, "session closes on failure")
	assert.Len(t, deckNotes(t, d), 2, "earlier cards stay committed")
}

func TestGenerateCardsDryRun(t *testing.T) {
	var out bytes.Buffer
	got, err := fretGen().GenerateCards(context.Background(), nil, &out, []int{0, 12})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "E", got[1].Answer)
	assert.Equal(t, 2, strings.Count(out.String(), strings.Repeat("=", 100)))
}

func TestGenerateCardsInto(t *testing.T) {
	ctx := context.Background()
	d, opens, closes := testDeck(t)

	err := d.WithSession(ctx, func(s *deck.Session) error {
		if _, err := fretGen().GenerateCardsInto(ctx, s, nil, []int{0, 1}); err != nil {
			return err
		}
		_, err := fretGen().GenerateCardsInto(ctx, s, nil, []int{2})
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, *opens)
	assert.Equal(t, 1, *closes)
	assert.Len(t, deckNotes(t, d), 3)
}

func TestGenerateCardsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fretGen().GenerateCardsInto(ctx, newRecordingSink(), nil, []int{1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintCardAndWithImage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintCard(&out, Card{Question: "Q", Answer: "A"}))
	assert.True(t, strings.HasPrefix(out.String(), strings.Repeat("=", 100)+"\nQ\n"))
	assert.Equal(t, `Q<br><br><img src="x.png">`, WithImage("Q", "x.png"))
}
