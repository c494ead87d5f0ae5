package testutil

import (
	"context"
	"sync"

	"github.com/semvec/semvec/backend"
	"github.com/semvec/semvec/embedding"
	"github.com/semvec/semvec/metadata"
)

// Provider is a scripted embedding provider. Unscripted texts embed via a
// deterministic mock so equal texts always produce equal vectors.
type Provider struct {
	mu sync.Mutex

	// Dimension is the produced vector length (unless BadDimension is set).
	Dimension int

	// Vectors overrides the produced vector per text.
	Vectors map[string][]float32

	// Err, when non-nil, fails every Embed call.
	Err error

	// ExtraVectors appends that many zero vectors to every response,
	// simulating a misbehaving provider.
	ExtraVectors int

	// BadDimension, when > 0, overrides the produced vector length.
	BadDimension int

	// Calls records the text batches submitted.
	Calls [][]string

	mock *embedding.Mock
}

var _ embedding.Provider = (*Provider)(nil)

// NewProvider creates a scripted provider producing vectors of the given
// dimension.
func NewProvider(dimension int) *Provider {
	return &Provider{
		Dimension: dimension,
		mock:      embedding.NewMock(dimension),
	}
}

// Embed implements embedding.Provider.
func (p *Provider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, append([]string(nil), texts...))

	if p.Err != nil {
		return nil, p.Err
	}

	dim := p.Dimension
	if p.BadDimension > 0 {
		dim = p.BadDimension
	}

	out := make([][]float32, 0, len(texts)+p.ExtraVectors)
	for _, text := range texts {
		if v, ok := p.Vectors[text]; ok {
			out = append(out, v)
			continue
		}
		if dim != p.Dimension {
			out = append(out, make([]float32, dim))
			continue
		}
		vs, err := p.mock.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		out = append(out, vs[0])
	}
	for i := 0; i < p.ExtraVectors; i++ {
		out = append(out, make([]float32, dim))
	}
	return out, nil
}

// Backend wraps a delegate backend, recording calls and injecting failures.
type Backend struct {
	mu sync.Mutex

	// Delegate serves calls that are not failed by the fields below.
	Delegate backend.Backend

	UpsertErr   error
	SearchErr   error
	DeleteErr   error
	FetchAllErr error

	// Upserts records every successful upsert batch.
	Upserts [][]backend.Payload

	// Deletes records every successful delete id batch.
	Deletes [][]string
}

var _ backend.Backend = (*Backend)(nil)

// NewBackend wraps delegate with call recording.
func NewBackend(delegate backend.Backend) *Backend {
	return &Backend{Delegate: delegate}
}

// Upsert implements backend.Backend.
func (b *Backend) Upsert(ctx context.Context, payloads []backend.Payload) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.UpsertErr != nil {
		return b.UpsertErr
	}
	if err := b.Delegate.Upsert(ctx, payloads); err != nil {
		return err
	}
	b.Upserts = append(b.Upserts, append([]backend.Payload(nil), payloads...))
	return nil
}

// Search implements backend.Backend.
func (b *Backend) Search(ctx context.Context, vector []float32, topK int, threshold *float32) ([]backend.SearchResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SearchErr != nil {
		return nil, b.SearchErr
	}
	return b.Delegate.Search(ctx, vector, topK, threshold)
}

// Delete implements backend.Backend.
func (b *Backend) Delete(ctx context.Context, ids []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	if err := b.Delegate.Delete(ctx, ids); err != nil {
		return err
	}
	b.Deletes = append(b.Deletes, append([]string(nil), ids...))
	return nil
}

// FetchAll implements backend.Backend.
func (b *Backend) FetchAll(ctx context.Context) ([]metadata.Metadata, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FetchAllErr != nil {
		return nil, b.FetchAllErr
	}
	return b.Delegate.FetchAll(ctx)
}
