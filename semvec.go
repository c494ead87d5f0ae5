package semvec

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/semvec/semvec/backend"
	"github.com/semvec/semvec/backend/remote"
	"github.com/semvec/semvec/codec"
	"github.com/semvec/semvec/embedding"
	"github.com/semvec/semvec/metadata"
	"github.com/semvec/semvec/predicate"
)

// Store orchestrates an embedding provider and a vector backend behind a
// validated save/fetch/delete/transaction surface.
//
// The store itself is a single logical actor: public operations are
// serialized through a weighted(1) semaphore, so no two operations overlap
// even though each may suspend on provider or backend I/O. The injected
// collaborators are immutable after construction; the backend's storage is
// never touched directly.
type Store[T Record] struct {
	schema   Schema
	provider embedding.Provider
	backend  backend.Backend
	codec    codec.Codec
	limits   Limits
	logger   *Logger
	metrics  MetricsCollector
	sem      *semaphore.Weighted
}

// New creates a Store from a schema and its two collaborators.
func New[T Record](schema Schema, provider embedding.Provider, b backend.Backend, optFns ...Option) (*Store[T], error) {
	if schema.VectorDimensions <= 0 {
		return nil, &ErrInvalidDimension{Dimension: schema.VectorDimensions}
	}

	opts := applyOptions(optFns)

	return &Store[T]{
		schema:   schema,
		provider: provider,
		backend:  b,
		codec:    opts.codec,
		limits:   opts.limits,
		logger:   opts.logger,
		metrics:  opts.metricsCollector,
		sem:      semaphore.NewWeighted(1),
	}, nil
}

// NewRemote creates a Store backed by the remote HTTP backend the schema
// describes: Endpoint as the base URL, Name as the collection, APIKey as the
// bearer credential. For remote tuning beyond that (batch sizes, retry
// policy, rate limits), construct the backend with remote.New and pass it to
// New directly.
func NewRemote[T Record](schema Schema, provider embedding.Provider, optFns ...Option) (*Store[T], error) {
	b, err := remote.New(schema.Endpoint, schema.Name, func(o *remote.Options) {
		o.APIKey = schema.APIKey
	})
	if err != nil {
		return nil, err
	}
	return New[T](schema, provider, b, optFns...)
}

// Schema returns the store's immutable schema.
func (s *Store[T]) Schema() Schema {
	return s.schema
}

// Save embeds and persists records as one batch.
//
// Validation is all-or-nothing: the batch must be non-empty and within the
// configured ceiling, the provider must return one vector per record, every
// vector must match the schema dimensionality, and every record's metadata
// must carry a non-empty id. Only after all of that passes is the backend
// called. The backend's own upsert loop is applied per payload and is not
// atomic (see backend.Backend).
func (s *Store[T]) Save(ctx context.Context, records []T) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	start := time.Now()
	err := s.save(ctx, records)
	s.metrics.RecordSave(len(records), time.Since(start), err)
	s.logger.LogSave(ctx, len(records), err)
	return err
}

func (s *Store[T]) save(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return ErrEmptyBatch
	}
	if len(records) > s.limits.MaxBatchSize {
		return &ErrBatchTooLarge{Size: len(records), Limit: s.limits.MaxBatchSize}
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.EmbeddingText()
	}

	// One logical provider call per save; the provider is never asked to
	// split the batch.
	vectors, err := s.provider.Embed(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(records) {
		return &ErrVectorCountMismatch{Want: len(records), Got: len(vectors)}
	}
	for _, v := range vectors {
		if len(v) != s.schema.VectorDimensions {
			return &ErrInvalidVectorDimensions{Expected: s.schema.VectorDimensions, Got: len(v)}
		}
	}

	payloads := make([]backend.Payload, len(records))
	for i, r := range records {
		meta, err := encodeMetadata(s.codec, r)
		if err != nil {
			return err
		}
		meta, err = metadata.Sanitize(meta, s.limits.Metadata)
		if err != nil {
			return err
		}
		if meta.ID() == "" {
			return &ErrMissingID{Index: i}
		}
		payloads[i] = backend.Payload{Vector: vectors[i], Metadata: meta}
	}

	return s.backend.Upsert(ctx, payloads)
}

// Fetch answers a query.
//
// Semantic requests embed the query text and run a nearest-neighbor search;
// metadata-only requests post-process the backend's full dump. Both paths
// then decode each metadata map into a record (entries that fail to decode
// are silently skipped), apply the predicate, the sort directives, and the
// clamped limit. Semantic results additionally carry each record's distance
// to the query, index-aligned with Records through filtering and sorting.
func (s *Store[T]) Fetch(ctx context.Context, req FetchRequest) (FetchResult[T], error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return FetchResult[T]{}, err
	}
	defer s.sem.Release(1)

	start := time.Now()
	result, err := s.fetch(ctx, req)
	s.metrics.RecordFetch(req.Query != "", result.Count, time.Since(start), err)
	s.logger.LogFetch(ctx, req.Query != "", result.Count, err)
	return result, err
}

func (s *Store[T]) fetch(ctx context.Context, req FetchRequest) (FetchResult[T], error) {
	limit := req.Limit
	if limit <= 0 || limit > s.limits.MaxFetchLimit {
		limit = s.limits.MaxFetchLimit
	}
	if req.Threshold != nil && *req.Threshold < 0 {
		return FetchResult[T]{}, &ErrInvalidThreshold{Threshold: *req.Threshold}
	}

	var (
		metas []metadata.Metadata
		dists []float32
		err   error
	)
	if req.Query == "" {
		metas, err = s.backend.FetchAll(ctx)
	} else {
		var vector []float32
		vector, err = s.embedQuery(ctx, req.Query)
		if err == nil {
			var hits []backend.SearchResult
			hits, err = s.backend.Search(ctx, vector, limit, req.Threshold)
			if err == nil {
				metas = make([]metadata.Metadata, len(hits))
				dists = make([]float32, len(hits))
				for i, h := range hits {
					metas[i] = h.Metadata
					dists[i] = h.Distance
				}
			}
		}
	}
	if err != nil {
		return FetchResult[T]{}, err
	}

	records := make([]T, 0, len(metas))
	var distances []float32
	if dists != nil {
		distances = make([]float32, 0, len(dists))
	}
	for i, m := range metas {
		rec, ok := decodeMetadata[T](s.codec, m)
		if !ok {
			// Partial or legacy metadata this reader does not understand.
			continue
		}
		if req.Predicate != nil && !req.Predicate.Matches(rec) {
			continue
		}
		records = append(records, rec)
		if distances != nil {
			distances = append(distances, dists[i])
		}
	}

	if len(req.Sort) > 0 {
		if distances == nil {
			predicate.Sort(records, req.Sort)
		} else {
			// Records and their distances must move together.
			order := make([]int, len(records))
			for i := range order {
				order[i] = i
			}
			sort.SliceStable(order, func(i, j int) bool {
				return predicate.Compare(records[order[i]], records[order[j]], req.Sort) < 0
			})
			sortedRecords := make([]T, len(records))
			sortedDistances := make([]float32, len(distances))
			for i, o := range order {
				sortedRecords[i] = records[o]
				sortedDistances[i] = distances[o]
			}
			records, distances = sortedRecords, sortedDistances
		}
	}
	if len(records) > limit {
		records = records[:limit]
		if distances != nil {
			distances = distances[:limit]
		}
	}

	return FetchResult[T]{Records: records, Distances: distances, Count: len(records)}, nil
}

func (s *Store[T]) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := s.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, &ErrVectorCountMismatch{Want: 1, Got: len(vectors)}
	}
	if len(vectors[0]) != s.schema.VectorDimensions {
		return nil, &ErrInvalidVectorDimensions{Expected: s.schema.VectorDimensions, Got: len(vectors[0])}
	}
	return vectors[0], nil
}

// Delete removes records by id. Unknown ids are silent no-ops, per the
// backend contract.
func (s *Store[T]) Delete(ctx context.Context, ids ...string) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	start := time.Now()
	err := s.delete(ctx, ids)
	s.metrics.RecordDelete(len(ids), time.Since(start), err)
	s.logger.LogDelete(ctx, len(ids), err)
	return err
}

// DeleteRecords removes records by their identity.
func (s *Store[T]) DeleteRecords(ctx context.Context, records ...T) error {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID()
	}
	return s.Delete(ctx, ids...)
}

func (s *Store[T]) delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.backend.Delete(ctx, ids)
}

// counter is implemented by backends that can report their entry count.
type counter interface {
	Count(ctx context.Context) (int, error)
}

// clearer is implemented by backends that can drop all entries.
type clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Count reports the number of stored entries. Backends without a native
// count return ErrNotSupported.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	c, ok := s.backend.(counter)
	if !ok {
		return 0, ErrNotSupported
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer s.sem.Release(1)
	return c.Count(ctx)
}

// Clear drops every stored entry and reports how many were removed.
// Backends without a native clear return ErrNotSupported.
func (s *Store[T]) Clear(ctx context.Context) (int, error) {
	c, ok := s.backend.(clearer)
	if !ok {
		return 0, ErrNotSupported
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return 0, err
	}
	defer s.sem.Release(1)
	return c.Clear(ctx)
}

// RunTransaction runs body to accumulate insert/update/delete intents, then
// applies them in the fixed order delete, update, insert. Deletes run first
// so a delete-then-reinsert of one id within a single transaction leaves the
// record existing; updates run before inserts so net-new records are not
// shadowed by a stale update to the same id.
//
// Atomicity is weak and deliberate: if a phase fails, later phases do not
// run, but completed phases are not rolled back. The failing phase's error
// is returned as-is.
func (s *Store[T]) RunTransaction(ctx context.Context, body func(tx *Tx[T]) error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	start := time.Now()
	tx := &Tx[T]{}
	err := body(tx)
	if err == nil {
		err = s.apply(ctx, tx)
	}
	s.metrics.RecordTransaction(time.Since(start), err)
	s.logger.LogTransaction(ctx, len(tx.deletes), len(tx.updates), len(tx.inserts), err)
	return err
}

func (s *Store[T]) apply(ctx context.Context, tx *Tx[T]) error {
	if len(tx.deletes) > 0 {
		if err := s.delete(ctx, tx.deletes); err != nil {
			return err
		}
	}
	if len(tx.updates) > 0 {
		if err := s.save(ctx, tx.updates); err != nil {
			return err
		}
	}
	if len(tx.inserts) > 0 {
		if err := s.save(ctx, tx.inserts); err != nil {
			return err
		}
	}
	return nil
}
