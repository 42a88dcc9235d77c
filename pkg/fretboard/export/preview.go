package export

import (
	"context"
	"io"
	"sync"

	"github.com/matzehuels/fretcards/pkg/fretboard"
)

// Displayer shows a rendered PNG to the user.
type Displayer interface {
	Display(ctx context.Context, png []byte) error
}

// DisplayerFunc adapts a function to the Displayer interface.
type DisplayerFunc func(ctx context.Context, png []byte) error

func (f DisplayerFunc) Display(ctx context.Context, png []byte) error { return f(ctx, png) }

var (
	displayerMu sync.RWMutex
	displayer   Displayer
)

// SetDisplayer installs the displayer used by the preview format. A nil
// displayer turns previews into plain PNG exports.
func SetDisplayer(d Displayer) {
	displayerMu.Lock()
	defer displayerMu.Unlock()
	displayer = d
}

func currentDisplayer() Displayer {
	displayerMu.RLock()
	defer displayerMu.RUnlock()
	return displayer
}

// Preview renders d as PNG, writes it to w when w is non-nil and hands the
// image to the installed displayer.
func Preview(ctx context.Context, d *fretboard.Diagram, w io.Writer) error {
	data, err := RenderPNG(d)
	if err != nil {
		return err
	}
	if w != nil {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if disp := currentDisplayer(); disp != nil {
		return disp.Display(ctx, data)
	}
	return nil
}
