// Package metadata defines the string-keyed metadata representation that
// travels with every stored vector, plus the sanitization applied before a
// payload reaches a backend.
package metadata

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

const (
	// KeyID is the metadata key every payload must carry. Backends use it
	// as the dedup and delete key.
	KeyID = "id"

	// KeyData carries the encoded record. It is exempt from value
	// truncation: a truncated record would decode to garbage, so oversized
	// records are rejected via MaxBytes instead.
	KeyData = "data"
)

// Metadata is a flat string-keyed mapping stored alongside a vector.
type Metadata map[string]string

// ID returns the value of the "id" key, or "" if absent.
func (m Metadata) ID() string {
	return m[KeyID]
}

// Clone returns a shallow copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Bytes returns the total size of all keys and values.
func (m Metadata) Bytes() int {
	n := 0
	for k, v := range m {
		n += len(k) + len(v)
	}
	return n
}

// Limits bounds metadata growth per payload. These are safety limits against
// storage blowup, not business rules.
type Limits struct {
	// MaxKeys is the maximum number of keys retained after sanitization.
	MaxKeys int

	// MaxValueLen is the maximum value length in bytes; longer values are
	// truncated.
	MaxValueLen int

	// MaxBytes is the hard ceiling on total metadata size after
	// sanitization. Exceeding it fails the save.
	MaxBytes int
}

// DefaultLimits returns safe production defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxKeys:     64,
		MaxValueLen: 8 * 1024,
		MaxBytes:    64 * 1024,
	}
}

// ErrTooLarge indicates metadata exceeded the hard size ceiling even after
// sanitization.
type ErrTooLarge struct {
	Bytes int
	Limit int
}

func (e *ErrTooLarge) Error() string {
	return fmt.Sprintf("metadata too large: %d bytes exceeds limit %d", e.Bytes, e.Limit)
}

// Sanitize returns a copy of m bounded by the given limits: values longer
// than MaxValueLen are truncated at a rune boundary and the key count is
// capped at MaxKeys.
// Key selection under the cap is deterministic (lexicographic) and the "id"
// key is always retained. If the sanitized result still exceeds MaxBytes,
// Sanitize returns ErrTooLarge.
//
// The input map is never mutated.
func Sanitize(m Metadata, limits Limits) (Metadata, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if limits.MaxKeys > 0 && len(keys) > limits.MaxKeys {
		// The id and data keys always survive the cap; everything else is
		// kept in lexicographic order until the budget runs out.
		reserved := make([]string, 0, 2)
		rest := make([]string, 0, len(keys))
		for _, k := range keys {
			if k == KeyID || k == KeyData {
				reserved = append(reserved, k)
			} else {
				rest = append(rest, k)
			}
		}
		budget := limits.MaxKeys - len(reserved)
		if budget < 0 {
			budget = 0
		}
		if len(rest) > budget {
			rest = rest[:budget]
		}
		keys = append(reserved, rest...)
	}

	out := make(Metadata, len(keys))
	for _, k := range keys {
		v := m[k]
		if limits.MaxValueLen > 0 && len(v) > limits.MaxValueLen && k != KeyID && k != KeyData {
			// Back up to a rune boundary so the cut never leaves
			// invalid UTF-8 behind.
			cut := limits.MaxValueLen
			for cut > 0 && !utf8.RuneStart(v[cut]) {
				cut--
			}
			v = v[:cut]
		}
		out[k] = v
	}

	if limits.MaxBytes > 0 {
		if n := out.Bytes(); n > limits.MaxBytes {
			return nil, &ErrTooLarge{Bytes: n, Limit: limits.MaxBytes}
		}
	}

	return out, nil
}
