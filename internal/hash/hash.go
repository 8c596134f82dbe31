// Package hash provides the content fingerprints used by the replay engine:
// a cryptographic digest for rename-pair matching, and a fast non-cryptographic
// hash for the Snapshot's line-interning cache.
package hash

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// ContentDigest is a cryptographic-strength fingerprint of a blob's raw bytes.
// Two blobs with equal ContentDigest are considered identical content for the
// purposes of rename promotion (DiffResolver). Collision resistance matters
// here: a false match would silently fuse two unrelated files into one
// rename, corrupting every downstream path-scoped statistic.
type ContentDigest [sha256.Size]byte

// OfBytes computes the content digest of b.
func OfBytes(b []byte) ContentDigest {
	return ContentDigest(sha256.Sum256(b))
}

// String renders the digest as a hex string, for diagnostics.
func (d ContentDigest) String() string {
	return hex.EncodeToString(d[:])
}

// LineKey is a fast, non-cryptographic fingerprint of a single line's bytes,
// used only to intern identical lines so the Snapshot does not keep one copy
// of a repeated line (e.g. a blank line, a closing brace) per occurrence.
// Collisions here only cost a little extra memory, never correctness: the
// interning table always compares the actual bytes before reusing an entry.
type LineKey = uint64

// OfLine computes the interning key for a single line's bytes.
func OfLine(b []byte) LineKey {
	return xxhash.Sum64(b)
}
