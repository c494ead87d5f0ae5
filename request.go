package semvec

import (
	"github.com/semvec/semvec/predicate"
)

// FetchRequest describes one query against the store.
//
// With a Query, the request is semantic: the query text is embedded and the
// backend performs a nearest-neighbor search. Without one, the backend's
// full metadata dump is post-processed client-side.
type FetchRequest struct {
	// Query is the optional semantic query text.
	Query string

	// Limit caps the number of returned records. Zero means the configured
	// ceiling; larger values are clamped to it.
	Limit int

	// Threshold, when non-nil, excludes results whose distance exceeds it.
	// Must be non-negative.
	Threshold *float32

	// Predicate filters decoded records client-side. Nil matches all.
	Predicate predicate.Predicate

	// Sort orders the surviving records. Empty keeps backend order
	// (ascending distance for semantic queries).
	Sort []predicate.SortDescriptor
}

// Threshold returns a pointer suitable for FetchRequest.Threshold.
func Threshold(v float32) *float32 {
	return &v
}

// FetchResult carries the decoded records of a fetch.
type FetchResult[T Record] struct {
	// Records are the decoded results in final order.
	Records []T

	// Distances holds each record's distance to the query vector,
	// index-aligned with Records. Non-nil only for semantic fetches;
	// metadata-only fetches have no query vector to measure against.
	Distances []float32

	// Count is len(Records), exposed for symmetry with remote APIs that
	// report a count alongside the page.
	Count int
}
