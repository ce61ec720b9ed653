package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// FakeEmbed returns a deterministic embedding function: each distinct
// text maps to a fixed unit vector of the given dimension, seeded from
// its hash. Similar dimensions, zero network calls, stable across runs.
func FakeEmbed(dim int) func(ctx context.Context, text string) ([]float32, error) {
	return func(_ context.Context, text string) ([]float32, error) {
		sum := sha256.Sum256([]byte(text))

		vec := make([]float32, dim)
		var norm float64
		for i := range vec {
			// Stretch the 32-byte digest across the vector by mixing the
			// index back into the hash.
			var seed [8]byte
			copy(seed[:], sum[(i*4)%28:])
			binary.LittleEndian.PutUint32(seed[4:], uint32(i))
			v := float32(int32(binary.LittleEndian.Uint64(seed[:]))) / float32(math.MaxInt32)
			vec[i] = v
			norm += float64(v) * float64(v)
		}

		// Normalize so cosine distance behaves like the real embedder's.
		if norm > 0 {
			scale := float32(1 / math.Sqrt(norm))
			for i := range vec {
				vec[i] *= scale
			}
		}
		return vec, nil
	}
}
