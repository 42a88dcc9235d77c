// Package pkg provides the libraries behind fretcards, a generator of
// flashcards for learning the guitar fretboard.
//
// # Overview
//
// Cards are built from question and answer functions, optionally illustrated
// with a rendered fretboard diagram, and written as notes into a deck of a
// flashcard collection. The pkg directory is organized as:
//
//  1. [fretboard] - Diagram model, geometry and note placement
//  2. [fretboard/export] - SVG, PNG, PDF and preview exporters
//  3. [cards] - Basic and fretboard card generators
//  4. [deck] - Deck sessions over a collection and a media store
//  5. [collection] - SQLite collection storage
//  6. [media] - Media stores (directory, S3) with collision renaming
//  7. [pipeline] - Cached rendering of diagrams to artifacts
//
// # Architecture
//
// The typical data flow:
//
//	parameters
//	     ↓
//	[cards] question → fretboard → answer
//	     ↓                ↓
//	     ↓          [pipeline] render PNG (cached)
//	     ↓                ↓
//	[deck] session ← [media] store image under a unique name
//	     ↓
//	[collection] note + card rows
//
// # Quick Start
//
// Build one card per fret on the low E string:
//
//	import (
//	    "github.com/matzehuels/fretcards/pkg/cards"
//	    "github.com/matzehuels/fretcards/pkg/deck"
//	    "github.com/matzehuels/fretcards/pkg/fretboard"
//	)
//
//	d, _ := deck.New(deck.Options{Name: "Guitar::Low E"})
//	gen := cards.FretboardGenerator[int]{
//	    Generator: cards.Generator[int]{
//	        Question: func(fret int) (string, error) { return "Which note is marked?", nil },
//	        Answer: func(fret int) (string, error) {
//	            return fretboard.NoteName(fretboard.StandardTuning, 6, fret)
//	        },
//	    },
//	    Fretboard: func(fret int) (*fretboard.Layout, error) {
//	        l, err := fretboard.New(fretboard.DefaultConfig())
//	        if err != nil {
//	            return nil, err
//	        }
//	        return l, l.AddNote(6, fret, "", "")
//	    },
//	}
//	out, err := gen.GenerateCards(ctx, d, nil, []int{0, 1, 2, 3, 4, 5})
//
// # Supporting Packages
//
// [cache] - Render cache backends (file, redis, null) with retry helpers.
//
// [observability] - Hooks for card, render and cache events.
//
// [errors] - Code-based errors and input validators.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/fretboard/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// The PDF exporter test is skipped when rsvg-convert is not installed.
//
// [fretboard]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/fretboard
// [fretboard/export]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/fretboard/export
// [cards]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/cards
// [deck]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/deck
// [collection]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/collection
// [media]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/media
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/fretcards/pkg/buildinfo
package pkg
