package robinhood

import (
	"github.com/cespare/xxhash/v2"
)

// Hasher computes the raw 64-bit hash of a key. Implementations must be
// deterministic: equal key content yields equal hashes across calls. The raw
// hash is cached per entry and reused across resizes, so the key is never
// rehashed after insertion.
type Hasher func(key string) uint64

// DJB2 is the default string hash: an order-sensitive accumulation hash
// (hash = hash*33 + byte, seeded with 5381). The magic numbers are part of
// the algorithm and represent nothing specifically.
func DJB2(key string) uint64 {
	hash := uint64(5381)
	for i := 0; i < len(key); i++ {
		hash = ((hash << 5) + hash) + uint64(key[i])
	}

	return hash
}

// XXHash hashes keys with xxHash64. It distributes better than DJB2 for
// short or highly similar keys at a slightly higher per-call cost.
func XXHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// fibonacciMultiplier is 2^64 divided by the golden ratio.
const fibonacciMultiplier uint64 = 11400714819323198485

// distribute folds a raw hash into [0, 2^shift) by multiplying with the
// fibonacci constant and keeping the high bits. Accumulation hashes have weak
// low-order bits for short keys, so folding the high bits avoids the
// clustering a plain modulo would exhibit.
func distribute(hash uint64, shift uint8) uint64 {
	return (hash * fibonacciMultiplier) >> (64 - shift)
}
