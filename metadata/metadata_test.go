package metadata

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTruncatesValues(t *testing.T) {
	m := Metadata{
		KeyID:   "a",
		"title": strings.Repeat("x", 100),
	}

	out, err := Sanitize(m, Limits{MaxValueLen: 10})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 10), out["title"])
	assert.Equal(t, "a", out.ID())
	// Input untouched.
	assert.Len(t, m["title"], 100)
}

func TestSanitizeTruncatesOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; a byte-index cut at 5 would split the third rune.
	m := Metadata{
		KeyID:   "a",
		"title": strings.Repeat("é", 8),
	}

	out, err := Sanitize(m, Limits{MaxValueLen: 5})
	require.NoError(t, err)
	assert.Equal(t, "éé", out["title"])
	assert.True(t, utf8.ValidString(out["title"]))
}

func TestSanitizeKeyCapKeepsReserved(t *testing.T) {
	m := Metadata{
		KeyID:   "a",
		KeyData: `{"id":"a"}`,
		"zzz":   "1",
		"aaa":   "2",
		"mmm":   "3",
	}

	out, err := Sanitize(m, Limits{MaxKeys: 3})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Contains(t, out, KeyID)
	assert.Contains(t, out, KeyData)
	// Lexicographically first extra key survives.
	assert.Contains(t, out, "aaa")
}

func TestSanitizeNeverTruncatesData(t *testing.T) {
	data := strings.Repeat("d", 64)
	m := Metadata{KeyID: "a", KeyData: data}

	out, err := Sanitize(m, Limits{MaxValueLen: 8})
	require.NoError(t, err)
	assert.Equal(t, data, out[KeyData])
}

func TestSanitizeTooLarge(t *testing.T) {
	m := Metadata{KeyID: "a", KeyData: strings.Repeat("d", 1024)}

	_, err := Sanitize(m, Limits{MaxBytes: 100})
	require.Error(t, err)

	var tl *ErrTooLarge
	require.ErrorAs(t, err, &tl)
	assert.Equal(t, 100, tl.Limit)
	assert.Greater(t, tl.Bytes, tl.Limit)
}

func TestSanitizeZeroLimitsPassThrough(t *testing.T) {
	m := Metadata{KeyID: "a", "k": "v"}

	out, err := Sanitize(m, Limits{})
	require.NoError(t, err)
	assert.Equal(t, m, out)
}

func TestCloneAndBytes(t *testing.T) {
	m := Metadata{"a": "12", "b": "3"}
	assert.Equal(t, 5, m.Bytes())

	c := m.Clone()
	c["a"] = "changed"
	assert.Equal(t, "12", m["a"])

	assert.Nil(t, Metadata(nil).Clone())
}
