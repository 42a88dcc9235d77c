package cards

import (
	"fmt"

	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// FretboardFromArgs returns a fretboard function that draws the notes named
// by the keyword parameters on a board built from cfg. A single note is given
// by "string", "fret" and optional "label" and "color"; several notes by a
// "notes" list of maps with the same keys.
func FretboardFromArgs(cfg fretboard.Config) func(Args) (*fretboard.Layout, error) {
	return func(a Args) (*fretboard.Layout, error) {
		l, err := fretboard.New(cfg)
		if err != nil {
			return nil, err
		}
		for _, n := range notesFromArgs(a) {
			if err := addNote(l, n); err != nil {
				return nil, err
			}
		}
		return l, nil
	}
}

func notesFromArgs(a Args) []Args {
	raw, ok := a.Get("notes")
	if !ok {
		if _, hasString := a.Get("string"); !hasString {
			return nil
		}
		return []Args{a}
	}
	list, _ := raw.([]any)
	notes := make([]Args, 0, len(list))
	for _, item := range list {
		switch m := item.(type) {
		case map[string]any:
			notes = append(notes, Args{Keyword: m})
		case map[any]any:
			kw := make(map[string]any, len(m))
			for k, v := range m {
				kw[fmt.Sprint(k)] = v
			}
			notes = append(notes, Args{Keyword: kw})
		default:
			notes = append(notes, Args{Keyword: map[string]any{"invalid": item}})
		}
	}
	return notes
}

func addNote(l *fretboard.Layout, n Args) error {
	if v, bad := n.Get("invalid"); bad {
		return errors.New(errors.ErrCodeInvalidInput, "note entry %v is not a map", v)
	}
	str, err := n.Int("string")
	if err != nil {
		return err
	}
	fret, err := n.Int("fret")
	if err != nil {
		return err
	}
	return l.AddNote(str, fret, n.String("label"), n.String("color"))
}
