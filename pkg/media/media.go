// Package media stores deck media files under collision-free names.
//
// A [Store] is a flat namespace of file names (a directory or an S3 prefix).
// [SaveFile] and [SaveBytes] never overwrite: when the requested name is
// taken, a fresh random token is inserted before the extension and the check
// repeats until a free name is found. Byte-identical content is not
// deduplicated; each save creates a new file.
package media

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/fretcards/pkg/errors"
)

// ErrExists is returned by [Store.Create] when the name is already taken.
var ErrExists = stderrors.New("media file already exists")

// Store is a flat collection of named media files.
type Store interface {
	// Exists reports whether name is taken.
	Exists(ctx context.Context, name string) (bool, error)

	// Create stores r under name. It must fail with ErrExists rather than
	// replace an existing file.
	Create(ctx context.Context, name string, r io.Reader, size int64) error

	// Location describes where files end up, for messages.
	Location() string
}

// maxAttempts bounds the rename loop; collisions on a fresh UUID are not
// expected, so running out means the store is misbehaving.
const maxAttempts = 100

// newToken generates the collision token. Tests replace it.
var newToken = func() string { return uuid.New().String() }

// SaveFile copies the file at sourcePath into the store. An empty destName
// reuses the source's base name. It returns the name actually stored.
func SaveFile(ctx context.Context, s Store, sourcePath, destName string) (string, error) {
	f, err := os.Open(sourcePath)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "media source %s", sourcePath)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "open media source %s", sourcePath)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "stat media source %s", sourcePath)
	}
	if info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidPath, "media source %s is a directory", sourcePath)
	}
	if destName == "" {
		destName = filepath.Base(sourcePath)
	}
	return save(ctx, s, destName, info.Size(), func() (io.Reader, error) {
		_, err := f.Seek(0, io.SeekStart)
		return f, err
	})
}

// SaveBytes stores data under name, or a renamed variant if name is taken.
func SaveBytes(ctx context.Context, s Store, name string, data []byte) (string, error) {
	return save(ctx, s, name, int64(len(data)), func() (io.Reader, error) {
		return bytes.NewReader(data), nil
	})
}

func save(ctx context.Context, s Store, name string, size int64, open func() (io.Reader, error)) (string, error) {
	if err := errors.ValidateMediaName(name); err != nil {
		return "", err
	}
	stem, ext := SplitName(name)

	for range maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := s.Exists(ctx, name)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "check media %s", name)
		}
		if !taken {
			r, err := open()
			if err != nil {
				return "", errors.Wrap(errors.ErrCodeInternal, err, "read media source")
			}
			err = s.Create(ctx, name, r, size)
			if err == nil {
				return name, nil
			}
			if !stderrors.Is(err, ErrExists) {
				return "", errors.Wrap(errors.ErrCodeInternal, err, "store media %s in %s", name, s.Location())
			}
		}
		name = stem + "_" + newToken() + ext
	}
	return "", errors.New(errors.ErrCodeInternal, "no free media name for %s%s after %d attempts", stem, ext, maxAttempts)
}

// SplitName splits a file name into stem and extension. Dot files keep
// their full name as the stem.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	stem = strings.TrimSuffix(name, ext)
	if stem == "" {
		return name, ""
	}
	return stem, ext
}

func describe(kind, where string) string {
	return fmt.Sprintf("%s %s", kind, where)
}
