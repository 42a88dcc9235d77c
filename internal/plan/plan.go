// Package plan reads YAML card plans for the generate command.
//
// A plan names the kind of card, the question and answer templates and one
// parameter map per card:
//
//	kind: fretboard
//	deck: Guitar::Notes
//	question: "Which note is on string {{.string}}, fret {{.fret}}?"
//	answer: "{{note .string .fret}}"
//	tags: [fretboard]
//	cards:
//	  - {string: 6, fret: 0}
//	  - {string: 6, fret: 1, tags: [sharp]}
//	  - notes:
//	      - {string: 5, fret: 3, label: C}
//	      - {string: 2, fret: 1, label: C}
//
// Media files listed under media: are paths relative to the plan file and
// are copied into the deck's media store before the cards are written.
package plan

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fretcards/pkg/cards"
	"github.com/matzehuels/fretcards/pkg/errors"
	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// Plan kinds.
const (
	KindBasic     = "basic"
	KindFretboard = "fretboard"
)

// Plan is one decoded plan file.
type Plan struct {
	Kind      string           `yaml:"kind"`
	Deck      string           `yaml:"deck"`
	Question  string           `yaml:"question"`
	Answer    string           `yaml:"answer"`
	Tags      []string         `yaml:"tags"`
	Tuning    []string         `yaml:"tuning"`
	MediaName string           `yaml:"media_name"`
	Media     []string         `yaml:"media"`
	Cards     []map[string]any `yaml:"cards"`

	// Path is the file the plan was read from, if any.
	Path string `yaml:"-"`
}

// Generator is the batch interface shared by basic and fretboard generators.
type Generator interface {
	GenerateCards(ctx context.Context, d cards.Opener, printOut io.Writer, ps []cards.Args) ([]cards.Card, error)
}

// Expand resolves each pattern with doublestar globbing. A pattern without
// glob metacharacters must name an existing file. Duplicates are dropped and
// the order of first appearance is kept.
func Expand(patterns []string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "bad pattern %q", p)
		}
		if len(matches) == 0 {
			if strings.ContainsAny(p, "*?[{") {
				return nil, errors.New(errors.ErrCodeNotFound, "no plans match %q", p)
			}
			return nil, errors.New(errors.ErrCodeFileNotFound, "plan not found: %s", p)
		}
		for _, m := range matches {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "plan not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read plan")
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "%s", path)
	}
	p.Path = path
	return p, nil
}

// Parse decodes a plan, rejecting unknown keys, and validates it.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidPlan, "empty plan")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode plan")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate fills the default kind and checks the templates and media names.
func (p *Plan) Validate() error {
	if p.Kind == "" {
		p.Kind = KindBasic
	}
	p.Kind = strings.ToLower(p.Kind)
	if p.Kind != KindBasic && p.Kind != KindFretboard {
		return errors.New(errors.ErrCodeInvalidPlan, "kind must be %q or %q, got %q", KindBasic, KindFretboard, p.Kind)
	}
	if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
		return errors.New(errors.ErrCodeInvalidPlan, "question and answer templates are required")
	}
	if p.MediaName != "" {
		if err := errors.ValidateMediaName(p.MediaName); err != nil {
			return err
		}
	}
	for _, m := range p.Media {
		if err := errors.ValidatePath(m); err != nil {
			return err
		}
	}
	return nil
}

// Args converts the card list into generator parameters.
func (p *Plan) Args() ([]cards.Args, error) {
	return cards.ZipArgs(nil, p.Cards)
}

// MediaPaths resolves the media entries against the plan's directory.
func (p *Plan) MediaPaths() []string {
	dir := filepath.Dir(p.Path)
	out := make([]string, len(p.Media))
	for i, m := range p.Media {
		out[i] = filepath.Join(dir, m)
	}
	return out
}

// Generator compiles the templates into a card generator. board is the
// fretboard used by fretboard plans; a plan tuning replaces board.Tuning.
// r renders diagrams and may be nil.
func (p *Plan) Generator(board fretboard.Config, r cards.Renderer) (Generator, error) {
	if len(p.Tuning) > 0 {
		board.Tuning = slices.Clone(p.Tuning)
	}
	tuning := board.Tuning
	if len(tuning) == 0 {
		tuning = fretboard.StandardTuning
	}
	q, a, err := cards.TemplateFuncsWithTuning(p.Question, p.Answer, tuning)
	if err != nil {
		return nil, err
	}
	gen := cards.Generator[cards.Args]{Question: q, Answer: a, Tags: p.tagsFor}
	if p.Kind == KindBasic {
		return gen, nil
	}
	if err := board.Validate(); err != nil {
		return nil, err
	}
	return cards.FretboardGenerator[cards.Args]{
		Generator: gen,
		Fretboard: cards.FretboardFromArgs(board),
		Renderer:  r,
		MediaName: p.MediaName,
	}, nil
}

// tagsFor merges plan tags with a card's own "tags" list.
func (p *Plan) tagsFor(a cards.Args) []string {
	tags := slices.Clone(p.Tags)
	raw, ok := a.Get("tags")
	if !ok {
		return tags
	}
	switch v := raw.(type) {
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok && !slices.Contains(tags, s) {
				tags = append(tags, s)
			}
		}
	case string:
		if !slices.Contains(tags, v) {
			tags = append(tags, v)
		}
	}
	return tags
}
