// Package hashing builds fixed-size cache keys from variable-length parts.
package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Key returns the hex SHA-256 digest of parts. Each part is length-prefixed,
// so ("ab", "c") and ("a", "bc") produce different keys.
func Key(parts ...string) string {
	h := sha256.New()

	var size [binary.MaxVarintLen64]byte
	for _, part := range parts {
		n := binary.PutUvarint(size[:], uint64(len(part)))
		h.Write(size[:n])
		h.Write([]byte(part))
	}

	return hex.EncodeToString(h.Sum(nil))
}
