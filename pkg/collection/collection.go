// Package collection stores flashcard notes in a SQLite collection file.
//
// A collection holds note types ("models"), named decks, notes and the cards
// generated from them. Notes keep their fields joined with the 0x1f unit
// separator, the sort field stripped of markup and a checksum of the first
// field for duplicate lookups.
//
// Usage:
//
//	col, err := collection.Open(ctx, "collection.db")
//	defer col.Close()
//	model, err := col.ModelByName(ctx, collection.BasicModel)
//	deckID, err := col.DeckID(ctx, "Guitar")
//	note := model.NewNote("What note is this?", "E")
//	err = col.AddNote(ctx, note, deckID)
package collection

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/fretcards/pkg/errors"
)

const schemaVersion = "1"

// BasicModel is the built-in two-field note type.
const BasicModel = "Basic"

// FieldSeparator joins note fields in the flds column.
const FieldSeparator = "\x1f"

// Collection is an open collection file.
type Collection struct {
	db   *sql.DB
	path string
}

// Open opens the collection at path, creating the file and its schema if
// needed. A leading ~ expands to the home directory.
func Open(ctx context.Context, path string) (*Collection, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "collection path is required")
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", path)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create collection directory")
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open collection %s", path)
	}
	// A single connection keeps writes ordered and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	c := &Collection{db: db, path: path}
	if err := c.bootstrap(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Path returns the collection file path.
func (c *Collection) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *Collection) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *Collection) bootstrap(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS notetypes (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			fields TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS decks (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			guid TEXT NOT NULL UNIQUE,
			mid INTEGER NOT NULL REFERENCES notetypes(id),
			mod INTEGER NOT NULL,
			tags TEXT NOT NULL,
			flds TEXT NOT NULL,
			sfld TEXT NOT NULL,
			csum INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY,
			nid INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			did INTEGER NOT NULL REFERENCES decks(id),
			ord INTEGER NOT NULL,
			mod INTEGER NOT NULL,
			due INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_csum ON notes(csum);
		CREATE INDEX IF NOT EXISTS idx_cards_did ON cards(did);
		CREATE INDEX IF NOT EXISTS idx_cards_nid ON cards(nid);
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "set up collection schema")
	}

	if _, err := c.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO notetypes (name, fields) VALUES (?, ?)`,
		BasicModel, strings.Join([]string{"Front", "Back"}, FieldSeparator),
	); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "seed %s note type", BasicModel)
	}
	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion,
	); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "update collection metadata")
	}
	return nil
}

// SchemaVersion returns the schema version recorded in the collection.
func (c *Collection) SchemaVersion(ctx context.Context) (string, error) {
	var v string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&v)
	if err != nil {
		return "", fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}
