package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Dir stores media files in a local directory.
type Dir struct {
	path string
}

// NewDir returns a store rooted at path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// Path returns the directory.
func (d *Dir) Path() string { return d.path }

func (d *Dir) Location() string { return describe("directory", d.path) }

func (d *Dir) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Lstat(filepath.Join(d.path, name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create writes r to a new file. O_EXCL guards against a file appearing
// between Exists and Create.
func (d *Dir) Create(_ context.Context, name string, r io.Reader, _ int64) error {
	p := filepath.Join(d.path, name)
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return err
	}
	return nil
}

var _ Store = (*Dir)(nil)
