package deck

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/fretcards/pkg/collection"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/media"
)

// countingOpen wraps collection.Open and counts opens and closes.
type countingOpen struct {
	opens, closes int
}

type countedCollection struct {
	*collection.Collection
	c *countingOpen
}

func (cc countedCollection) Close() error {
	cc.c.closes++
	return cc.Collection.Close()
}

func (c *countingOpen) open(ctx context.Context, path string) (Collection, error) {
	col, err := collection.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	c.opens++
	return countedCollection{Collection: col, c: c}, nil
}

func newTestDeck(t *testing.T) (*Deck, *countingOpen) {
	t.Helper()
	dir := t.TempDir()
	counter := &countingOpen{}
	d, err := New(Options{
		Name:           "Guitar",
		CollectionPath: filepath.Join(dir, "collection.db"),
		Open:           counter.open,
	})
	require.NoError(t, err)
	return d, counter
}

func notes(t *testing.T, d *Deck) []collection.Note {
	t.Helper()
	ctx := context.Background()
	col, err := collection.Open(ctx, d.CollectionPath())
	require.NoError(t, err)
	defer col.Close()
	id, err := col.DeckID(ctx, d.Name())
	require.NoError(t, err)
	ns, err := col.Notes(ctx, id)
	require.NoError(t, err)
	return ns
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	d, err := New(Options{Name: "Guitar"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "fretcards", DefaultUser, "collection.db"), d.CollectionPath())
	dir, ok := d.Media().(*media.Dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(os.Getenv("XDG_DATA_HOME"), "fretcards", DefaultUser, "collection.media"), dir.Path())
	assert.False(t, d.IsOpen())
}

func TestNewRequiresName(t *testing.T) {
	_, err := New(Options{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestAdHocAddCardOpensAndCloses(t *testing.T) {
	ctx := context.Background()
	d, counter := newTestDeck(t)

	require.NoError(t, d.AddCard(ctx, "q1", "a1", "fretboard"))
	require.NoError(t, d.AddCard(ctx, "q2", "a2"))

	assert.Equal(t, 2, counter.opens)
	assert.Equal(t, 2, counter.closes)
	assert.False(t, d.IsOpen())

	ns := notes(t, d)
	require.Len(t, ns, 2)
	assert.Equal(t, []string{"q1", "a1"}, ns[0].Fields)
	assert.Equal(t, []string{"fretboard"}, ns[0].Tags)
}

func TestAddCardReusesOpenSession(t *testing.T) {
	ctx := context.Background()
	d, counter := newTestDeck(t)

	err := d.WithSession(ctx, func(s *Session) error {
		for range 3 {
			if err := d.AddCard(ctx, "q", "a"); err != nil {
				return err
			}
		}
		assert.Equal(t, 3, s.Added())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, counter.opens)
	assert.Equal(t, 1, counter.closes)
	assert.Len(t, notes(t, d), 3)
}

func TestWithSessionClosesOnError(t *testing.T) {
	ctx := context.Background()
	d, counter := newTestDeck(t)
	boom := stderrors.New("boom")

	err := d.WithSession(ctx, func(s *Session) error {
		require.NoError(t, s.AddCard(ctx, "kept", "a"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, counter.closes)
	assert.False(t, d.IsOpen())

	ns := notes(t, d)
	require.Len(t, ns, 1, "cards added before the failure stay committed")
	assert.Equal(t, "kept", ns[0].Fields[0])
}

func TestOpenTwiceFails(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDeck(t)

	s, err := d.Open(ctx)
	require.NoError(t, err)
	defer s.Close()

	_, err = d.Open(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestSessionCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	d, counter := newTestDeck(t)

	s, err := d.Open(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, counter.closes)

	err = s.AddCard(ctx, "q", "a")
	assert.True(t, errors.Is(err, errors.ErrCodeSessionClosed))

	s2, err := d.Open(ctx)
	require.NoError(t, err, "a new session can open after close")
	require.NoError(t, s2.Close())
}

func TestOpenUnknownModel(t *testing.T) {
	ctx := context.Background()
	counter := &countingOpen{}
	d, err := New(Options{
		Name:           "Guitar",
		CollectionPath: filepath.Join(t.TempDir(), "c.db"),
		Model:          "Cloze",
		Open:           counter.open,
	})
	require.NoError(t, err)

	_, err = d.Open(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeModelNotFound))
	assert.Equal(t, 1, counter.closes, "collection must be released when open fails")
	assert.False(t, d.IsOpen())
}

func TestSaveMediaTwiceSameName(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDeck(t)
	src := filepath.Join(t.TempDir(), "fretboard.png")
	require.NoError(t, os.WriteFile(src, []byte("png"), 0o644))

	store := d.Media().(*media.Dir)
	require.NoError(t, os.WriteFile(filepath.Join(store.Path(), "board.png"), []byte("old"), 0o644))

	first, err := d.SaveMedia(ctx, src, "board.png")
	require.NoError(t, err)
	second, err := d.SaveMedia(ctx, src, "board.png")
	require.NoError(t, err)

	assert.NotEqual(t, "board.png", first)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "board.png", second)

	name, err := d.SaveMedia(ctx, src, "")
	require.NoError(t, err)
	assert.Equal(t, "fretboard.png", name)
}

func TestSessionSaveMediaBytes(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDeck(t)

	err := d.WithSession(ctx, func(s *Session) error {
		a, err := s.SaveMediaBytes(ctx, "fretboard.png", []byte("1"))
		require.NoError(t, err)
		b, err := s.SaveMediaBytes(ctx, "fretboard.png", []byte("2"))
		require.NoError(t, err)
		assert.Equal(t, "fretboard.png", a)
		assert.NotEqual(t, a, b)
		return nil
	})
	require.NoError(t, err)
}

func TestProfileDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	dir, err := ProfileDir("alice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "fretcards", "alice"), dir)

	for _, bad := range []string{"", "..", "a/b"} {
		_, err := ProfileDir(bad)
		assert.Error(t, err, bad)
	}
}

func TestMediaDir(t *testing.T) {
	assert.Equal(t, "/x/collection.media", MediaDir("/x/collection.db"))
	assert.Equal(t, "/x/deck.media", MediaDir("/x/deck"))
}
