// Package deck adds cards and media to a named deck in a collection.
//
// A [Deck] is cheap to construct; the collection file is only opened by a
// [Session]. Callers either hold a session explicitly:
//
//	err := d.WithSession(ctx, func(s *deck.Session) error {
//	    return s.AddCard(ctx, "Question", "Answer", "tag")
//	})
//
// or use the ad-hoc [Deck.AddCard], which opens a session for the call when
// none is open and reuses the open one otherwise. A Deck has at most one open
// session at a time and is not safe for concurrent use.
package deck

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fretcards/pkg/collection"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/media"
	"github.com/matzehuels/fretcards/pkg/observability"
)

// DefaultUser is the profile used when Options.User is empty.
const DefaultUser = "default"

// Collection is the part of a collection a session uses.
type Collection interface {
	ModelByName(ctx context.Context, name string) (*collection.Model, error)
	DeckID(ctx context.Context, name string) (int64, error)
	AddNote(ctx context.Context, n *collection.Note, deckID int64) error
	Close() error
}

// OpenFunc opens the collection at path.
type OpenFunc func(ctx context.Context, path string) (Collection, error)

// Options configures a Deck.
type Options struct {
	// Name is the deck name inside the collection.
	Name string

	// User selects the profile directory for default paths.
	User string

	// CollectionPath defaults to <data dir>/fretcards/<User>/collection.db.
	CollectionPath string

	// Media defaults to a directory store next to the collection.
	Media media.Store

	// Model is the note type for new cards (default "Basic").
	Model string

	// Open overrides how the collection is opened.
	Open OpenFunc

	Logger *log.Logger
}

// Deck is a named deck in a collection file.
type Deck struct {
	opts Options

	mu      sync.Mutex
	session *Session
}

// New creates a Deck, resolving default paths. Nothing is opened yet.
func New(opts Options) (*Deck, error) {
	if opts.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "deck name is required")
	}
	if opts.User == "" {
		opts.User = DefaultUser
	}
	if opts.CollectionPath == "" {
		dir, err := ProfileDir(opts.User)
		if err != nil {
			return nil, err
		}
		opts.CollectionPath = filepath.Join(dir, "collection.db")
	}
	if opts.Media == nil {
		store, err := media.NewDir(MediaDir(opts.CollectionPath))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create media directory")
		}
		opts.Media = store
	}
	if opts.Model == "" {
		opts.Model = collection.BasicModel
	}
	if opts.Open == nil {
		opts.Open = func(ctx context.Context, path string) (Collection, error) {
			return collection.Open(ctx, path)
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Deck{opts: opts}, nil
}

// Name returns the deck name.
func (d *Deck) Name() string { return d.opts.Name }

// CollectionPath returns the resolved collection file path.
func (d *Deck) CollectionPath() string { return d.opts.CollectionPath }

// Media returns the deck's media store.
func (d *Deck) Media() media.Store { return d.opts.Media }

// IsOpen reports whether a session is currently open.
func (d *Deck) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session != nil
}

// Open opens the collection, resolves the model and deck, and returns the
// session. It fails if a session is already open on this Deck.
func (d *Deck) Open(ctx context.Context) (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "deck %q already has an open session", d.opts.Name)
	}

	col, err := d.opts.Open(ctx, d.opts.CollectionPath)
	if err != nil {
		return nil, err
	}
	model, err := col.ModelByName(ctx, d.opts.Model)
	if err != nil {
		col.Close()
		return nil, err
	}
	deckID, err := col.DeckID(ctx, d.opts.Name)
	if err != nil {
		col.Close()
		return nil, err
	}

	d.session = &Session{deck: d, col: col, model: model, deckID: deckID}
	d.opts.Logger.Debug("opened deck", "deck", d.opts.Name, "collection", d.opts.CollectionPath)
	return d.session, nil
}

// WithSession opens a session, runs fn and closes the session on every
// path. fn's error takes precedence over a close error.
func (d *Deck) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	s, err := d.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// AddCard adds a note with fields [question, answer]. The open session is
// reused; otherwise one is opened for this call only.
func (d *Deck) AddCard(ctx context.Context, question, answer string, tags ...string) error {
	if s := d.current(); s != nil {
		return s.AddCard(ctx, question, answer, tags...)
	}
	return d.WithSession(ctx, func(s *Session) error {
		return s.AddCard(ctx, question, answer, tags...)
	})
}

// SaveMedia copies sourcePath into the media store. Media does not need an
// open session.
func (d *Deck) SaveMedia(ctx context.Context, sourcePath, destName string) (string, error) {
	name, err := media.SaveFile(ctx, d.opts.Media, sourcePath, destName)
	if err != nil {
		return "", err
	}
	d.mediaSaved(ctx, destName, sourcePath, name)
	return name, nil
}

// SaveMediaBytes stores data in the media store under name or a renamed
// variant.
func (d *Deck) SaveMediaBytes(ctx context.Context, name string, data []byte) (string, error) {
	stored, err := media.SaveBytes(ctx, d.opts.Media, name, data)
	if err != nil {
		return "", err
	}
	observability.Cards().OnMediaSaved(ctx, name, stored, int64(len(data)))
	d.opts.Logger.Debug("saved media", "name", stored, "size", len(data))
	return stored, nil
}

func (d *Deck) mediaSaved(ctx context.Context, requested, source, stored string) {
	if requested == "" {
		requested = filepath.Base(source)
	}
	var size int64
	if info, err := os.Stat(source); err == nil {
		size = info.Size()
	}
	observability.Cards().OnMediaSaved(ctx, requested, stored, size)
	d.opts.Logger.Debug("saved media", "name", stored, "source", source)
}

func (d *Deck) current() *Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

func (d *Deck) release(s *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == s {
		d.session = nil
	}
}
