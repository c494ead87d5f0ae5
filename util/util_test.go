package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items int
		size  int
		want  []int
	}{
		{"Remainder", 10, 3, []int{3, 3, 3, 1}},
		{"Exact", 9, 3, []int{3, 3, 3}},
		{"Oversized", 2, 5, []int{2}},
		{"One", 4, 1, []int{1, 1, 1, 1}},
		{"NoLimit", 4, 0, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			for i := range items {
				items[i] = i
			}

			batches := Chunk(items, tt.size)

			sizes := make([]int, len(batches))
			total := 0
			for i, b := range batches {
				sizes[i] = len(b)
				total += len(b)
			}
			assert.Equal(t, tt.want, sizes)
			assert.Equal(t, tt.items, total)
		})
	}
}

func TestChunkEmpty(t *testing.T) {
	assert.Nil(t, Chunk([]string{}, 3))
}

func TestChunkPreservesOrder(t *testing.T) {
	batches := Chunk([]int{0, 1, 2, 3, 4}, 2)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4}}, batches)
}

func TestGenerateRandomVectors(t *testing.T) {
	rng := NewRNG(1)
	vectors := rng.GenerateRandomVectors(5, 8)
	assert.Len(t, vectors, 5)
	for _, v := range vectors {
		assert.Len(t, v, 8)
	}

	// Same seed, same vectors.
	again := NewRNG(1).GenerateRandomVectors(5, 8)
	assert.Equal(t, vectors, again)
}
