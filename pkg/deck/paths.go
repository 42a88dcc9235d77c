package deck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/fretcards/pkg/errors"
)

const appName = "fretcards"

// ProfileDir returns the data directory for a profile, following XDG
// (~/.local/share/fretcards/<user>).
func ProfileDir(user string) (string, error) {
	if user == "" || strings.ContainsAny(user, `/\`) || user == "." || user == ".." {
		return "", errors.New(errors.ErrCodeInvalidInput, "invalid profile name %q", user)
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "resolve home directory")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, user), nil
}

// MediaDir returns the media directory that belongs to a collection file:
// collection.db -> collection.media.
func MediaDir(collectionPath string) string {
	ext := filepath.Ext(collectionPath)
	return strings.TrimSuffix(collectionPath, ext) + ".media"
}
