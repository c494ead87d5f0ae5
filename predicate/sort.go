package predicate

import (
	"sort"
	"strconv"
	"time"
)

// Direction selects the sort order for a single descriptor.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortDescriptor orders records by one field. A slice of descriptors forms a
// multi-key sort with first-descriptor-wins tie-breaking.
type SortDescriptor struct {
	Key       string
	Direction Direction
}

// Asc returns an ascending descriptor for key.
func Asc(key string) SortDescriptor {
	return SortDescriptor{Key: key, Direction: Ascending}
}

// Desc returns a descending descriptor for key.
func Desc(key string) SortDescriptor {
	return SortDescriptor{Key: key, Direction: Descending}
}

// Compare orders two records by the descriptors: negative when a sorts
// before b, positive when b sorts first, zero when every key ties. Records
// missing a field sort before records that have it.
func Compare(a, b FieldReader, descriptors []SortDescriptor) int {
	for _, d := range descriptors {
		av, aok := a.Field(d.Key)
		bv, bok := b.Field(d.Key)
		if !aok || !bok {
			if aok == bok {
				continue
			}
			c := 1
			if !aok {
				c = -1
			}
			if d.Direction == Descending {
				c = -c
			}
			return c
		}
		c := compareValues(av, bv)
		if c == 0 {
			continue
		}
		if d.Direction == Descending {
			c = -c
		}
		return c
	}
	return 0
}

// Sort orders records in place by the given descriptors using a stable sort.
func Sort[T FieldReader](records []T, descriptors []SortDescriptor) {
	if len(descriptors) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return Compare(records[i], records[j], descriptors) < 0
	})
}

// compareValues compares two rendered field values, preferring the richest
// typed interpretation both sides support: integer, then float, then
// timestamp, then plain string.
func compareValues(a, b string) int {
	if ai, aerr := strconv.ParseInt(a, 10, 64); aerr == nil {
		if bi, berr := strconv.ParseInt(b, 10, 64); berr == nil {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		}
	}
	if af, aerr := strconv.ParseFloat(a, 64); aerr == nil {
		if bf, berr := strconv.ParseFloat(b, 64); berr == nil {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aerr := time.Parse(time.RFC3339, a); aerr == nil {
		if bt, berr := time.Parse(time.RFC3339, b); berr == nil {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
