// Package seed derives deterministic random sources from domain inputs.
package seed

import (
	"hash/fnv"
	"math/rand"
)

// sep joins parts before hashing so ("ab","c") and ("a","bc") differ.
const sep = "\x1f"

// Hash returns the 64-bit FNV-1a hash of the joined parts.
func Hash(parts ...string) uint64 {
	h := fnv.New64a()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte(sep))
		}
		_, _ = h.Write([]byte(p))
	}
	return h.Sum64()
}

// Rand returns a rand.Rand seeded from the parts. Identical parts yield
// identical sequences; wall-clock time never participates.
func Rand(parts ...string) *rand.Rand {
	return rand.New(rand.NewSource(int64(Hash(parts...)))) //nolint:gosec // deterministic seed for reproducible output
}
