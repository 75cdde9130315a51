package extract

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash computes a stable content hash of a snapshot using xxhash. Identical
// snapshots always hash identically; the hash serves as the snapshot's
// identity in run records.
func Hash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
