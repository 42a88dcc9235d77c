package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey builds the cache key for a diagram rendered from svg in the
// given format and scale. The SVG fully determines the drawing, so equal
// diagrams share a key regardless of how they were built.
func ArtifactKey(svg []byte, format string, scale float64) string {
	return fmt.Sprintf("artifact:%s:%.2f:%s", format, scale, Hash(svg))
}
