package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a cache key from a stage prefix and the inputs that
// determine the stage's output. Keys look like "layout:<64 hex chars>".
// The full SHA-256 digest is kept; truncating would invite collisions
// between diagrams that differ only deep in their metadata.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex-encoded SHA-256 digest of data. Callers use it to
// fingerprint normalized diagrams and raw metadata documents.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
