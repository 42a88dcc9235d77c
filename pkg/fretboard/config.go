package fretboard

import (
	"github.com/matzehuels/fretcards/pkg/errors"
)

// StandardTuning lists the open strings of a six-string guitar from the
// highest-pitched string (1) to the lowest (6).
var StandardTuning = []string{"E", "B", "G", "D", "A", "E"}

// DefaultNoteColor is the fill of note markers when no color is given.
const DefaultNoteColor = "rgb(183,64,50)"

// General holds the dimensions of the neck.
type General struct {
	FirstFret  int     `toml:"first_fret"`
	LastFret   int     `toml:"last_fret"`
	XStart     float64 `toml:"x_start"`
	YStart     float64 `toml:"y_start"`
	FretWidth  float64 `toml:"fret_width"`
	FretHeight float64 `toml:"fret_height"`
	XEndOffset float64 `toml:"x_end_offset"`
	YEndOffset float64 `toml:"y_end_offset"`
	ShowFrets  bool    `toml:"show_frets"`
}

// Style is the visual styling shared by all elements. Each element reads the
// fields that apply to it and ignores the rest.
type Style struct {
	Color       string  `toml:"color"`
	Opacity     float64 `toml:"opacity"`
	Width       float64 `toml:"width"`
	Radius      float64 `toml:"radius"`
	StrokeColor string  `toml:"stroke_color"`
	StrokeWidth float64 `toml:"stroke_width"`
	TextColor   string  `toml:"text_color"`
	FontSize    float64 `toml:"font_size"`
}

// Config is the declarative description of a fretboard diagram.
type Config struct {
	General    General  `toml:"general"`
	Tuning     []string `toml:"tuning"`
	Background Style    `toml:"background"`
	Frets      Style    `toml:"frets"`
	NeckDots   Style    `toml:"neck_dots"`
	Strings    Style    `toml:"strings"`
	Nut        Style    `toml:"nut"`
	Note       Style    `toml:"note"`
}

// DefaultConfig returns the styling used for flashcard diagrams: frets 0-12,
// hidden fret wires, a cream background with a grey border and red notes.
func DefaultConfig() Config {
	return Config{
		General: General{
			FirstFret:  0,
			LastFret:   12,
			XStart:     10,
			YStart:     30,
			FretWidth:  80,
			FretHeight: 40,
			XEndOffset: -30,
			YEndOffset: -50,
		},
		Tuning: append([]string(nil), StandardTuning...),
		Background: Style{
			Color:       "rgb(254,250,240)",
			Opacity:     1,
			StrokeColor: "rgb(152,150,145)",
			StrokeWidth: 4,
		},
		Frets:    Style{Color: "rgb(152,150,145)", Width: 4},
		NeckDots: Style{Color: "rgb(229,227,222)", Radius: 10},
		Strings:  Style{Color: "rgb(209,183,156)", Width: 3},
		Nut:      Style{Color: "rgb(170,170,170)"},
		Note: Style{
			Color:       DefaultNoteColor,
			Radius:      12,
			StrokeColor: "rgb(0,0,0)",
			StrokeWidth: 1,
			TextColor:   "rgb(255,255,255)",
			FontSize:    14,
		},
	}
}

// FretCount returns the number of fret cells shown, the open cell included.
func (c Config) FretCount() int {
	return c.General.LastFret - c.General.FirstFret + 1
}

// StringCount returns the number of strings, taken from the tuning.
func (c Config) StringCount() int {
	return len(c.Tuning)
}

// Validate checks that the configuration describes a drawable neck.
func (c Config) Validate() error {
	g := c.General
	if g.FirstFret < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "first_fret must be >= 0, got %d", g.FirstFret)
	}
	if g.LastFret < g.FirstFret {
		return errors.New(errors.ErrCodeInvalidConfig, "last_fret (%d) must be >= first_fret (%d)", g.LastFret, g.FirstFret)
	}
	if c.StringCount() < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "tuning needs at least 2 strings, got %d", c.StringCount())
	}
	if g.FretWidth <= 0 || g.FretHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "fret_width and fret_height must be positive")
	}
	for _, s := range []Style{c.Background, c.Frets, c.NeckDots, c.Strings, c.Nut, c.Note} {
		if err := errors.ValidateColor(s.Color); err != nil {
			return err
		}
		if err := errors.ValidateColor(s.StrokeColor); err != nil {
			return err
		}
		if err := errors.ValidateColor(s.TextColor); err != nil {
			return err
		}
	}
	return nil
}
