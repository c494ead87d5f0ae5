package semvec

import (
	"github.com/semvec/semvec/codec"
	"github.com/semvec/semvec/metadata"
)

// Record is implemented by domain types stored in a Store.
//
// The store holds no long-lived cache of records: each save encodes the
// record into backend metadata and each read reconstructs it from the
// metadata the backend returns.
//
// Field exposes string-rendered field values for predicate and sort
// evaluation; an unknown name returns ("", false). Implementations are
// typically a small hand-written switch, keeping field access statically
// checkable instead of reflective.
type Record interface {
	// ID returns the record's unique identifier. Must be non-empty.
	ID() string

	// EmbeddingText returns the text submitted to the embedding provider.
	EmbeddingText() string

	// Field returns the string-rendered value of the named field.
	Field(name string) (string, bool)
}

// encodeMetadata serializes a record into backend metadata: the id under
// "id" and the codec-encoded record under "data".
func encodeMetadata(c codec.Codec, r Record) (metadata.Metadata, error) {
	encoded, err := c.Marshal(r)
	if err != nil {
		return nil, err
	}
	return metadata.Metadata{
		metadata.KeyID:   r.ID(),
		metadata.KeyData: string(encoded),
	}, nil
}

// decodeMetadata reconstructs a record from backend metadata. The boolean
// result reports success; failures are not errors because a store may hold
// entries written by a previous schema version this reader does not fully
// understand.
func decodeMetadata[T Record](c codec.Codec, m metadata.Metadata) (T, bool) {
	var rec T
	raw, ok := m[metadata.KeyData]
	if !ok {
		return rec, false
	}
	if err := c.Unmarshal([]byte(raw), &rec); err != nil {
		return rec, false
	}
	return rec, true
}
