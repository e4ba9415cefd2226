package utils

import (
	"hash/fnv"
	"strings"
)

// HashStringToUint64 gives a stable 64-bit digest, used to seed
// content-deterministic derivations like the weather snapshot.
func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// SeedFromParts joins the parts with a separator that cannot appear in zone
// or road names before hashing, so ("ab","c") and ("a","bc") differ.
func SeedFromParts(parts ...string) uint64 {
	return HashStringToUint64(strings.Join(parts, "\x1f"))
}
