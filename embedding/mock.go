package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// Compile-time check.
var _ Provider = (*Mock)(nil)

// Mock is a deterministic offline provider: each text hashes to a fixed
// unit-length vector, so equal texts always embed identically. Useful for
// tests and local development without a network provider.
type Mock struct {
	// Dimension is the length of produced vectors.
	Dimension int
}

// NewMock creates a Mock provider producing vectors of the given dimension.
func NewMock(dimension int) *Mock {
	return &Mock{Dimension: dimension}
}

// Embed implements Provider.
func (m *Mock) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.vectorFor(text)
	}
	return out, nil
}

func (m *Mock) vectorFor(text string) []float32 {
	v := make([]float32, m.Dimension)

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	var norm float64
	for i := range v {
		// xorshift over the text hash; cheap, stable across runs.
		seed ^= seed << 13
		seed ^= seed >> 7
		seed ^= seed << 17
		v[i] = float32(int64(seed%2000)-1000) / 1000
		norm += float64(v[i]) * float64(v[i])
	}

	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range v {
			v[i] *= inv
		}
	}
	return v
}
