package deck

import (
	"context"

	"github.com/matzehuels/fretcards/pkg/collection"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/observability"
)

// Session is an open collection handle bound to one deck and model.
type Session struct {
	deck   *Deck
	col    Collection
	model  *collection.Model
	deckID int64
	closed bool
	added  int
}

// Name returns the deck name.
func (s *Session) Name() string { return s.deck.opts.Name }

// DeckID returns the resolved deck id.
func (s *Session) DeckID() int64 { return s.deckID }

// Added returns how many cards this session has added.
func (s *Session) Added() int { return s.added }

// AddCard adds a note with fields [question, answer] and the given tags.
func (s *Session) AddCard(ctx context.Context, question, answer string, tags ...string) error {
	if s.closed {
		return errors.New(errors.ErrCodeSessionClosed, "session for deck %q is closed", s.deck.opts.Name)
	}
	note := s.model.NewNote(question, answer)
	note.Tags = tags
	if err := s.col.AddNote(ctx, note, s.deckID); err != nil {
		return err
	}
	s.added++
	observability.Cards().OnCardAdded(ctx, s.deck.opts.Name, note.ID)
	return nil
}

// SaveMedia copies a file into the deck's media store.
func (s *Session) SaveMedia(ctx context.Context, sourcePath, destName string) (string, error) {
	return s.deck.SaveMedia(ctx, sourcePath, destName)
}

// SaveMediaBytes stores in-memory data in the deck's media store.
func (s *Session) SaveMediaBytes(ctx context.Context, name string, data []byte) (string, error) {
	return s.deck.SaveMediaBytes(ctx, name, data)
}

// Close releases the collection. Closing twice is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.deck.release(s)
	s.deck.opts.Logger.Debug("closed deck", "deck", s.deck.opts.Name, "added", s.added)
	return s.col.Close()
}
