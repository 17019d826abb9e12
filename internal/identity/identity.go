// Package identity derives stable content identifiers from canonical
// article URLs. The identifier doubles as the cache key and the record id.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the number of hex characters kept from the digest. Collisions
// at this length are accepted as rare enough for this domain and are not
// detected.
const idLength = 12

// FromSourceURL hashes the canonical source URL and truncates the lowercase
// hex digest. Deterministic and total over any non-empty string.
func FromSourceURL(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])[:idLength]
}
