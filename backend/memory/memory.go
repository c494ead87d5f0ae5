// Package memory provides the reference in-memory backend.
//
// It favors simplicity over throughput: a single mutex guards every
// operation and search is an exhaustive O(n·d) scan. That bounds its use to
// small and medium corpora, which is the intended scope for a reference
// implementation.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/semvec/semvec/backend"
	"github.com/semvec/semvec/distance"
	"github.com/semvec/semvec/metadata"
)

// Compile-time check to ensure Backend satisfies the storage contract.
var _ backend.Backend = (*Backend)(nil)

// entry is the storage unit: one vector with its metadata, keyed implicitly
// by the metadata id.
type entry struct {
	vector []float32
	meta   metadata.Metadata
}

// Options contains configuration options for the in-memory backend.
type Options struct {
	// Metric selects the distance function used for search.
	Metric distance.Metric
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	Metric: distance.MetricL2,
}

// Backend is an in-memory vector backend guarded by a single coarse mutex.
// All operations are serialized; within one instance they observe a total
// order consistent with lock acquisition.
type Backend struct {
	mu       sync.Mutex
	entries  []entry
	distFunc distance.Func
	opts     Options
}

// New creates a new in-memory backend.
func New(optFns ...func(o *Options)) (*Backend, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	distFunc, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	return &Backend{
		entries:  make([]entry, 0),
		distFunc: distFunc,
		opts:     opts,
	}, nil
}

// Upsert implements backend.Backend. Each payload is applied independently
// with remove-then-append semantics, so re-upserted ids move to the tail of
// insertion order.
func (b *Backend) Upsert(ctx context.Context, payloads []backend.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range payloads {
		id := p.ID()
		for i, e := range b.entries {
			if e.meta.ID() == id {
				b.entries = append(b.entries[:i], b.entries[i+1:]...)
				break
			}
		}
		b.entries = append(b.entries, entry{
			vector: append([]float32(nil), p.Vector...),
			meta:   p.Metadata.Clone(),
		})
	}
	return nil
}

// Search implements backend.Backend. Distances are computed against every
// entry, sorted ascending with a stable sort so equal distances keep
// insertion order, then the threshold and topK cuts are applied.
func (b *Backend) Search(ctx context.Context, vector []float32, topK int, threshold *float32) ([]backend.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		return []backend.SearchResult{}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	type scored struct {
		dist float32
		meta metadata.Metadata
	}

	candidates := make([]scored, 0, len(b.entries))
	for _, e := range b.entries {
		d := b.distFunc(vector, e.vector)
		if threshold != nil && d > *threshold {
			continue
		}
		candidates = append(candidates, scored{dist: d, meta: e.meta})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]backend.SearchResult, len(candidates))
	for i, c := range candidates {
		results[i] = backend.SearchResult{Distance: c.dist, Metadata: c.meta.Clone()}
	}
	return results, nil
}

// Delete implements backend.Backend. Deletion is set-semantics: unknown ids
// are no-ops.
func (b *Backend) Delete(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.entries[:0]
	for _, e := range b.entries {
		if _, ok := doomed[e.meta.ID()]; !ok {
			kept = append(kept, e)
		}
	}
	// Zero the tail so dropped entries do not pin memory.
	for i := len(kept); i < len(b.entries); i++ {
		b.entries[i] = entry{}
	}
	b.entries = kept
	return nil
}

// FetchAll implements backend.Backend.
func (b *Backend) FetchAll(ctx context.Context) ([]metadata.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	results := make([]metadata.Metadata, len(b.entries))
	for i, e := range b.entries {
		results[i] = e.meta.Clone()
	}
	return results, nil
}

// Count returns the number of stored entries.
func (b *Backend) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries), nil
}

// Clear removes all entries and returns how many were removed.
func (b *Backend) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.entries)
	b.entries = make([]entry, 0)
	return n, nil
}
