package collection

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// Model is a note type: a name and an ordered list of field names.
type Model struct {
	ID     int64
	Name   string
	Fields []string
}

// NewNote builds an unsaved note of this model. Fields are assigned in order.
func (m *Model) NewNote(fields ...string) *Note {
	return &Note{ModelID: m.ID, Fields: fields}
}

// ModelByName looks up a note type. Unknown names return MODEL_NOT_FOUND.
func (c *Collection) ModelByName(ctx context.Context, name string) (*Model, error) {
	var (
		m      = Model{Name: name}
		fields string
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT id, fields FROM notetypes WHERE name = ?`, name,
	).Scan(&m.ID, &fields)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.ErrCodeModelNotFound, "note type %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "look up note type %q", name)
	}
	m.Fields = strings.Split(fields, FieldSeparator)
	return &m, nil
}

// DeckID resolves a deck by name, creating it when absent.
func (c *Collection) DeckID(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "deck name is required")
	}
	if _, err := c.db.ExecContext(ctx, `INSERT OR IGNORE INTO decks (name) VALUES (?)`, name); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "create deck %q", name)
	}
	var id int64
	if err := c.db.QueryRowContext(ctx, `SELECT id FROM decks WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "resolve deck %q", name)
	}
	return id, nil
}

// Decks returns all deck names keyed to their ids.
func (c *Collection) Decks(ctx context.Context) (map[string]int64, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name FROM decks`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list decks")
	}
	defer rows.Close()

	decks := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan deck")
		}
		decks[name] = id
	}
	return decks, rows.Err()
}
