// Package backend defines the storage contract every vector backend must
// satisfy, and the payload/error types that cross it.
package backend

import (
	"context"
	"fmt"

	"github.com/semvec/semvec/metadata"
)

// Payload is a (vector, metadata) pair submitted to a backend. Payloads are
// transient: constructed per save call and passed by value.
//
// Metadata must contain a non-empty "id" key; the store validates this
// before any backend call.
type Payload struct {
	Vector   []float32
	Metadata metadata.Metadata
}

// ID returns the payload's id metadata value.
func (p Payload) ID() string {
	return p.Metadata.ID()
}

// SearchResult is one search hit: the entry's metadata and its distance to
// the query vector.
type SearchResult struct {
	Distance float32
	Metadata metadata.Metadata
}

// ID returns the hit's id metadata value.
func (r SearchResult) ID() string {
	return r.Metadata.ID()
}

// Backend is a pluggable storage adapter.
//
// Implementations may block on I/O and must honor ctx cancellation.
type Backend interface {
	// Upsert inserts or fully replaces payloads keyed by their metadata id.
	// Re-upserting an existing id replaces vector and metadata; there is no
	// merge. The loop over payloads is not atomic: a mid-batch failure may
	// leave earlier payloads applied.
	Upsert(ctx context.Context, payloads []Payload) error

	// Search returns at most topK hits ordered by ascending distance to
	// vector. A non-nil threshold excludes entries with distance greater
	// than it entirely. topK <= 0 or an empty backend yields an empty
	// result, not an error.
	Search(ctx context.Context, vector []float32, topK int, threshold *float32) ([]SearchResult, error)

	// Delete removes entries whose id is in ids. Unknown ids are silently
	// ignored.
	Delete(ctx context.Context, ids []string) error

	// FetchAll returns an unordered dump of all current metadata. Intended
	// for metadata-only queries over small and medium corpora; there is no
	// pagination.
	FetchAll(ctx context.Context) ([]metadata.Metadata, error)
}

// Error wraps a backend failure with the operation that produced it and,
// for remote backends, the HTTP status code (0 when not applicable).
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend: %s failed with status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("backend: %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
