// ABOUTME: Digest engine for content-addressed scribble identifiers.
// ABOUTME: Hex SHA-256 over the content bytes only, nothing else folded in.

package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// IDLength is the length of a full hex object id.
const IDLength = sha256.Size * 2

// Digest returns the object id for content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ValidID reports whether s is a full-length lowercase hex digest.
func ValidID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
