package errors

import (
	"strings"
	"unicode"
)

// maxMediaNameLength bounds stored media file names. Collision renaming
// appends a 37-character UUID suffix, so the limit leaves room for it.
const maxMediaNameLength = 200

// ValidateMediaName validates a file name destined for a deck's media store.
// It must be a plain base name: the name is embedded in card markup and used
// as an object key, so separators and traversal sequences are rejected.
//
// Validation rules:
//   - Name cannot be empty
//   - Maximum length of 200 characters
//   - No null bytes or control characters
//   - No path separators
//   - Not "." or ".."
func ValidateMediaName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "media name cannot be empty")
	}

	if len(name) > maxMediaNameLength {
		return New(ErrCodeInvalidPath, "media name too long (max %d characters)", maxMediaNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "media name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "media name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "media name cannot be %q", name)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateColor validates a diagram color. Accepted forms are "#rgb",
// "#rrggbb" and "rgb(r,g,b)"; the empty string means "use the default".
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !strings.HasPrefix(c, "#") && !strings.HasPrefix(c, "rgb(") {
		return New(ErrCodeInvalidConfig, "unsupported color %q (use #rrggbb or rgb(r,g,b))", c)
	}
	if strings.HasPrefix(c, "#") && len(c) != 4 && len(c) != 7 {
		return New(ErrCodeInvalidConfig, "malformed hex color %q", c)
	}
	if strings.HasPrefix(c, "rgb(") && (!strings.HasSuffix(c, ")") || strings.Count(c, ",") != 2) {
		return New(ErrCodeInvalidConfig, "malformed rgb color %q", c)
	}
	return nil
}
