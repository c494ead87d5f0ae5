// Package remote provides a generic JSON-over-HTTP vector backend.
//
// It targets the request/response shape shared by REST vector databases:
// collection-scoped upsert/search/delete/scroll endpoints exchanging JSON
// points with string ids, float vectors, and a flat string payload. Wire
// details beyond that carry no architectural weight; adapters for concrete
// products only need to adjust paths and field names.
//
// Transient failures (connection errors, HTTP 408/429/500/502/503/504) are
// retried with exponential backoff and jitter up to a configured attempt
// ceiling. Other statuses surface immediately as *backend.Error.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/semvec/semvec/backend"
	"github.com/semvec/semvec/codec"
	"github.com/semvec/semvec/metadata"
	"github.com/semvec/semvec/retry"
	"github.com/semvec/semvec/util"
)

// Compile-time check to ensure Backend satisfies the storage contract.
var _ backend.Backend = (*Backend)(nil)

// Options contains configuration options for the remote backend.
type Options struct {
	// HTTPClient issues the requests. Defaults to http.DefaultClient;
	// callers configure timeouts there.
	HTTPClient *http.Client

	// APIKey, when non-empty, is sent as a bearer token.
	APIKey string

	// Codec encodes request and response bodies. Defaults to codec.Default.
	Codec codec.Codec

	// UpsertBatchSize bounds the number of points per upsert request.
	// Larger saves are split into consecutive requests.
	UpsertBatchSize int

	// Retry tunes the backoff policy for transient failures.
	Retry []func(o *retry.Options)

	// RequestsPerSec, when > 0, rate-limits outgoing requests client-side.
	RequestsPerSec float64
}

// DefaultOptions contains the default configuration options.
var DefaultOptions = Options{
	UpsertBatchSize: 256,
}

// Backend talks to a remote vector database over HTTP.
type Backend struct {
	baseURL    string
	collection string
	client     *http.Client
	codec      codec.Codec
	limiter    *rate.Limiter
	opts       Options
}

// New creates a remote backend for one collection at baseURL.
func New(baseURL, collection string, optFns ...func(o *Options)) (*Backend, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("remote: base URL required")
	}
	if collection == "" {
		return nil, fmt.Errorf("remote: collection name required")
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	c := opts.Codec
	if c == nil {
		c = codec.Default
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1)
	}

	return &Backend{
		baseURL:    baseURL,
		collection: collection,
		client:     client,
		codec:      c,
		limiter:    limiter,
		opts:       opts,
	}, nil
}

type point struct {
	ID       string            `json:"id"`
	Vector   []float32         `json:"vector,omitempty"`
	Distance float32           `json:"distance,omitempty"`
	Payload  metadata.Metadata `json:"payload"`
}

type upsertRequest struct {
	Points []point `json:"points"`
}

type searchRequest struct {
	Vector    []float32 `json:"vector"`
	Limit     int       `json:"limit"`
	Threshold *float32  `json:"threshold,omitempty"`
}

type searchResponse struct {
	Results []point `json:"results"`
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}

type scrollResponse struct {
	Points []point `json:"points"`
}

// Upsert implements backend.Backend. Batches beyond UpsertBatchSize are
// split into consecutive requests; a mid-batch failure leaves earlier
// requests applied.
func (b *Backend) Upsert(ctx context.Context, payloads []backend.Payload) error {
	for _, chunk := range util.Chunk(payloads, b.opts.UpsertBatchSize) {
		req := upsertRequest{Points: make([]point, len(chunk))}
		for i, p := range chunk {
			req.Points[i] = point{
				ID:      p.ID(),
				Vector:  p.Vector,
				Payload: p.Metadata,
			}
		}
		if err := b.call(ctx, "upsert", req, nil); err != nil {
			return err
		}
	}
	return nil
}

// Search implements backend.Backend.
func (b *Backend) Search(ctx context.Context, vector []float32, topK int, threshold *float32) ([]backend.SearchResult, error) {
	if topK <= 0 {
		return []backend.SearchResult{}, nil
	}

	var resp searchResponse
	req := searchRequest{Vector: vector, Limit: topK, Threshold: threshold}
	if err := b.call(ctx, "search", req, &resp); err != nil {
		return nil, err
	}

	results := make([]backend.SearchResult, len(resp.Results))
	for i, p := range resp.Results {
		results[i] = backend.SearchResult{Distance: p.Distance, Metadata: p.Payload}
	}
	return results, nil
}

// Delete implements backend.Backend.
func (b *Backend) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return b.call(ctx, "delete", deleteRequest{IDs: ids}, nil)
}

// FetchAll implements backend.Backend.
func (b *Backend) FetchAll(ctx context.Context) ([]metadata.Metadata, error) {
	var resp scrollResponse
	if err := b.call(ctx, "scroll", struct{}{}, &resp); err != nil {
		return nil, err
	}

	results := make([]metadata.Metadata, len(resp.Points))
	for i, p := range resp.Points {
		results[i] = p.Payload
	}
	return results, nil
}

// call posts body to the collection-scoped op endpoint and decodes the
// response into out (when non-nil), retrying transient failures.
func (b *Backend) call(ctx context.Context, op string, body any, out any) error {
	encoded, err := b.codec.Marshal(body)
	if err != nil {
		return &backend.Error{Op: op, Err: err}
	}

	url := fmt.Sprintf("%s/collections/%s/%s", b.baseURL, b.collection, op)

	optFns := append([]func(o *retry.Options){}, b.opts.Retry...)
	optFns = append(optFns, func(o *retry.Options) {
		o.RetryIf = func(err error) bool {
			var be *backend.Error
			if errors.As(err, &be) {
				if be.Status != 0 {
					return retry.RetryableStatus(be.Status)
				}
				// Transport-level failure (timeout, connection refused).
				return true
			}
			return false
		}
	})

	return retry.Do(ctx, func(ctx context.Context) error {
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		return b.doOnce(ctx, op, url, encoded, out)
	}, optFns...)
}

func (b *Backend) doOnce(ctx context.Context, op, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &backend.Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.opts.APIKey)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return &backend.Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount for the error message.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &backend.Error{
			Op:     op,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status: %s", bytes.TrimSpace(snippet)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &backend.Error{Op: op, Err: err}
	}
	if err := b.codec.Unmarshal(data, out); err != nil {
		return &backend.Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
