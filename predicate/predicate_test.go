package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	name string
	tag  string
	rank string
}

func (i item) Field(name string) (string, bool) {
	switch name {
	case "name":
		return i.name, true
	case "tag":
		return i.tag, true
	case "rank":
		return i.rank, true
	default:
		return "", false
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name    string
		pred    Predicate
		rec     item
		matches bool
	}{
		{"Match", Equal("tag", "tech"), item{tag: "tech"}, true},
		{"NoMatch", Equal("tag", "tech"), item{tag: "news"}, false},
		{"UnknownKey", Equal("missing", "x"), item{tag: "tech"}, false},
		{"EmptyValue", Equal("tag", ""), item{tag: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.pred.Matches(tt.rec))
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name    string
		pred    Predicate
		rec     item
		matches bool
	}{
		{"Substring", Contains("name", "ell"), item{name: "hello"}, true},
		{"FullMatch", Contains("name", "hello"), item{name: "hello"}, true},
		{"NoMatch", Contains("name", "xyz"), item{name: "hello"}, false},
		{"UnknownKey", Contains("missing", "x"), item{name: "hello"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.matches, tt.pred.Matches(tt.rec))
		})
	}
}

func TestAnd(t *testing.T) {
	rec := item{name: "hello", tag: "tech"}

	assert.True(t, And(Equal("tag", "tech"), Contains("name", "ell")).Matches(rec))
	assert.False(t, And(Equal("tag", "tech"), Equal("name", "bye")).Matches(rec))
	assert.True(t, And().Matches(rec))
}
