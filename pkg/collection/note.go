package collection

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// Note is a record of field values and tags.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Fields  []string
	Tags    []string
	Mod     time.Time
}

// AddNote stores the note and one card for it in the deck. The note's ID,
// GUID and Mod are filled in on success.
func (c *Collection) AddNote(ctx context.Context, n *Note, deckID int64) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidInput, "note is nil")
	}
	model, err := c.modelByID(ctx, n.ModelID)
	if err != nil {
		return err
	}
	if len(n.Fields) != len(model.Fields) {
		return errors.New(errors.ErrCodeInvalidInput,
			"note has %d fields, note type %q expects %d", len(n.Fields), model.Name, len(model.Fields))
	}

	guid := n.GUID
	if guid == "" {
		guid = uuid.NewString()
	}
	now := time.Now()
	sfld := stripMarkup(n.Fields[0])

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "begin transaction")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO notes (guid, mid, mod, tags, flds, sfld, csum)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, guid, n.ModelID, now.Unix(), joinTags(n.Tags), strings.Join(n.Fields, FieldSeparator), sfld, fieldChecksum(sfld))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "insert note")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read note id")
	}

	var due int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE did = ?`, deckID).Scan(&due); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "count cards")
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cards (nid, did, ord, mod, due) VALUES (?, ?, 0, ?, ?)
	`, id, deckID, now.Unix(), due+1); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "insert card")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "commit note")
	}
	n.ID, n.GUID, n.Mod = id, guid, now.Truncate(time.Second)
	return nil
}

// Notes returns the notes that have a card in the deck, oldest first.
func (c *Collection) Notes(ctx context.Context, deckID int64) ([]Note, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT n.id, n.guid, n.mid, n.mod, n.tags, n.flds
		FROM notes n JOIN cards c ON c.nid = n.id
		WHERE c.did = ?
		ORDER BY n.id
	`, deckID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list notes")
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var (
			n          Note
			mod        int64
			tags, flds string
		)
		if err := rows.Scan(&n.ID, &n.GUID, &n.ModelID, &mod, &tags, &flds); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan note")
		}
		n.Mod = time.Unix(mod, 0)
		n.Tags = strings.Fields(tags)
		n.Fields = strings.Split(flds, FieldSeparator)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// FindByChecksum returns the ids of notes whose first field has the same
// checksum as text.
func (c *Collection) FindByChecksum(ctx context.Context, text string) ([]int64, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id FROM notes WHERE csum = ? ORDER BY id`, fieldChecksum(stripMarkup(text)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find notes")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan note id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (c *Collection) modelByID(ctx context.Context, id int64) (*Model, error) {
	var (
		m      = Model{ID: id}
		fields string
	)
	err := c.db.QueryRowContext(ctx, `SELECT name, fields FROM notetypes WHERE id = ?`, id).Scan(&m.Name, &fields)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeModelNotFound, err, "note type %d", id)
	}
	m.Fields = strings.Split(fields, FieldSeparator)
	return &m, nil
}

var markupPattern = regexp.MustCompile(`(?s)<[^>]*>`)

// stripMarkup removes tags and decodes entities, leaving plain text.
func stripMarkup(s string) string {
	return strings.TrimSpace(html.UnescapeString(markupPattern.ReplaceAllString(s, "")))
}

// fieldChecksum is the first 32 bits of the SHA-1 of s.
func fieldChecksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return v
}

// joinTags stores tags space-separated with surrounding spaces so that
// LIKE '% tag %' matches whole tags.
func joinTags(tags []string) string {
	var clean []string
	for _, t := range tags {
		t = strings.Join(strings.Fields(t), "_")
		if t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return " " + strings.Join(clean, " ") + " "
}
