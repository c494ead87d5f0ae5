package semvec

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBatch is returned when a save is called with no records.
	ErrEmptyBatch = errors.New("semvec: empty batch")

	// ErrNotSupported is returned for operations a backend or store
	// configuration cannot serve. Reachable paths never abort the process.
	ErrNotSupported = errors.New("semvec: not supported")
)

// ErrBatchTooLarge indicates a save batch exceeded the configured ceiling.
type ErrBatchTooLarge struct {
	Size  int
	Limit int
}

func (e *ErrBatchTooLarge) Error() string {
	return fmt.Sprintf("semvec: batch of %d records exceeds limit %d", e.Size, e.Limit)
}

// ErrVectorCountMismatch indicates the embedding provider returned a
// different number of vectors than texts submitted. This is a defensive
// check against a misbehaving provider.
type ErrVectorCountMismatch struct {
	Want int
	Got  int
}

func (e *ErrVectorCountMismatch) Error() string {
	return fmt.Sprintf("semvec: provider returned %d vectors for %d texts", e.Got, e.Want)
}

// ErrInvalidVectorDimensions indicates a vector does not match the schema's
// dimensionality. The whole save fails; nothing is persisted.
type ErrInvalidVectorDimensions struct {
	Expected int
	Got      int
}

func (e *ErrInvalidVectorDimensions) Error() string {
	return fmt.Sprintf("semvec: invalid vector dimensions: expected %d, got %d", e.Expected, e.Got)
}

// ErrInvalidDimension indicates an invalid configured dimensionality.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("semvec: invalid schema dimension: %d", e.Dimension)
}

// ErrMissingID indicates a record's derived metadata lacks a non-empty id.
type ErrMissingID struct {
	Index int
}

func (e *ErrMissingID) Error() string {
	return fmt.Sprintf("semvec: record %d has no id in metadata", e.Index)
}

// ErrInvalidThreshold indicates a negative similarity threshold, which is
// meaningless for the L2 metric.
type ErrInvalidThreshold struct {
	Threshold float32
}

func (e *ErrInvalidThreshold) Error() string {
	return fmt.Sprintf("semvec: invalid threshold %v: must be non-negative", e.Threshold)
}
