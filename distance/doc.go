// Package distance provides vector distance calculations for the store core.
//
// All functions operate on plain []float32 slices. Callers are expected to
// validate dimensionality once at the store boundary; the exported functions
// that can observe a mismatch return ErrDimensionMismatch instead of
// panicking.
package distance
