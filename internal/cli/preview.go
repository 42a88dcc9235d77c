package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/fretcards/pkg/fretboard/export"
)

// fileDisplayer shows previews in a terminal by writing each image to its
// own temporary file and printing the path to w.
func fileDisplayer(w io.Writer) export.DisplayerFunc {
	return func(ctx context.Context, png []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.CreateTemp("", appName+"-*.png")
		if err != nil {
			return fmt.Errorf("create preview file: %w", err)
		}
		if _, err := f.Write(png); err != nil {
			f.Close()
			os.Remove(f.Name())
			return fmt.Errorf("write preview: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write preview: %w", err)
		}
		_, err = fmt.Fprintf(w, "[fretboard: %s]\n", f.Name())
		return err
	}
}
