// Package predicate provides client-side filtering and ordering over
// records reconstructed from backend metadata.
//
// Filtering never touches the backend: records are decoded first, then
// matched against their string-rendered field values. A record type opts in
// by implementing FieldReader; there is no runtime reflection.
package predicate

import "strings"

// FieldReader exposes a record's fields by name as rendered strings.
// The second return value reports whether the field exists.
type FieldReader interface {
	Field(name string) (string, bool)
}

// Predicate is a boolean filter over a record's fields.
type Predicate interface {
	// Matches reports whether the record satisfies the predicate.
	// An unknown field never matches.
	Matches(r FieldReader) bool
}

type equal struct {
	key   string
	value string
}

func (p equal) Matches(r FieldReader) bool {
	v, ok := r.Field(p.key)
	return ok && v == p.value
}

// Equal matches records whose field key renders exactly to value.
func Equal(key, value string) Predicate {
	return equal{key: key, value: value}
}

type contains struct {
	key   string
	value string
}

func (p contains) Matches(r FieldReader) bool {
	v, ok := r.Field(p.key)
	return ok && strings.Contains(v, p.value)
}

// Contains matches records whose field key renders to a string containing
// value as a substring.
func Contains(key, value string) Predicate {
	return contains{key: key, value: value}
}

type and []Predicate

func (ps and) Matches(r FieldReader) bool {
	for _, p := range ps {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

// And combines predicates with AND logic. And() with no arguments matches
// everything.
func And(preds ...Predicate) Predicate {
	return and(preds)
}
