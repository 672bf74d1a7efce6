package util

import "math/rand"

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateKeys generates random keys of the given length using the given RNG.
// Keys are drawn independently, so duplicates are possible for short lengths.
func (r *RNG) GenerateKeys(num int, length int) []string {
	keys := make([]string, num)
	buf := make([]byte, length)

	for i := range keys {
		for j := range buf {
			buf[j] = keyAlphabet[r.rand.Intn(len(keyAlphabet))]
		}
		keys[i] = string(buf)
	}

	return keys
}

// Intn returns a deterministic pseudo-random int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}
