package semvec

import (
	"github.com/semvec/semvec/distance"
	"github.com/semvec/semvec/metadata"
)

// Schema describes one store instance. It is a plain immutable value,
// constructed once at store creation and never mutated.
type Schema struct {
	// Name identifies the store (and the remote collection, if any).
	Name string

	// VectorDimensions is the fixed dimensionality every vector in this
	// store must have. Required, > 0.
	VectorDimensions int

	// Metric declares the distance metric. The reference backend enforces
	// it; remote backends may apply their own server-side configuration.
	Metric distance.Metric

	// Endpoint is the optional remote backend URL, consumed by NewRemote.
	// Empty for local stores.
	Endpoint string

	// APIKey is the optional credential for the remote endpoint, consumed
	// by NewRemote.
	APIKey string
}

// Limits defines bounds for request validation. These prevent unbounded
// batches and metadata blowup, not business rules.
type Limits struct {
	// MaxBatchSize is the maximum number of records per save.
	MaxBatchSize int

	// MaxFetchLimit is the ceiling a fetch limit is clamped to, and the
	// default when no limit is given.
	MaxFetchLimit int

	// Metadata bounds per-payload metadata size.
	Metadata metadata.Limits
}

// DefaultLimits returns safe production defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxBatchSize:  1000,
		MaxFetchLimit: 100,
		Metadata:      metadata.DefaultLimits(),
	}
}
