package fretboard

import (
	"strings"

	"github.com/matzehuels/fretcards/pkg/errors"
)

var chromatic = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var flats = map[string]string{
	"DB": "C#", "EB": "D#", "GB": "F#", "AB": "G#", "BB": "A#",
	"CB": "B", "FB": "E", "E#": "F", "B#": "C",
}

// pitchClass returns the index of name in the chromatic scale. Sharps and
// flats are accepted ("Bb", "A#"); octave digits are ignored.
func pitchClass(name string) (int, bool) {
	n := strings.ToUpper(strings.TrimRight(strings.TrimSpace(name), "0123456789"))
	if alias, ok := flats[n]; ok {
		n = alias
	}
	for i, c := range chromatic {
		if c == n {
			return i, true
		}
	}
	return 0, false
}

// NoteName returns the name of the note sounding at fret on string str
// (1-indexed from the highest-pitched string) for the given tuning.
// Accidentals are spelled as sharps.
func NoteName(tuning []string, str, fret int) (string, error) {
	if str < 1 || str > len(tuning) || fret < 0 {
		return "", errors.New(errors.ErrCodeInvalidPosition, "no note at string %d fret %d for a %d-string tuning", str, fret, len(tuning))
	}
	open, ok := pitchClass(tuning[str-1])
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidConfig, "unknown note %q in tuning", tuning[str-1])
	}
	return chromatic[(open+fret)%len(chromatic)], nil
}
