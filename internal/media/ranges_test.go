package media

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange_FullContent(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"absent header", ""},
		{"whitespace only", "   "},
		{"wrong unit", "items=0-10"},
		{"no equals sign", "bytes 0-10"},
		{"no dash", "bytes=42"},
		{"garbage start", "bytes=abc-10"},
		{"garbage end", "bytes=0-xyz"},
		{"negative start", "bytes=-5-10"},
		{"multi-range", "bytes=0-10,20-30"},
		{"empty spec", "bytes=-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ResolveRange(tt.header, 1000)
			require.NoError(t, err)
			assert.Nil(t, spec, "malformed or absent Range must serve full content")
		})
	}
}

func TestResolveRange_OpenEnded(t *testing.T) {
	spec, err := ResolveRange("bytes=0-", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(0), spec.Start)
	assert.Equal(t, int64(999), spec.End)
	assert.Equal(t, int64(1000), spec.Length())

	spec, err = ResolveRange("bytes=500-", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(500), spec.Start)
	assert.Equal(t, int64(999), spec.End)
}

func TestResolveRange_Suffix(t *testing.T) {
	spec, err := ResolveRange("bytes=-100", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(900), spec.Start)
	assert.Equal(t, int64(999), spec.End)

	// Suffix longer than the file clamps to the full file.
	spec, err = ResolveRange("bytes=-5000", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(0), spec.Start)
	assert.Equal(t, int64(999), spec.End)
}

func TestResolveRange_Bounded(t *testing.T) {
	spec, err := ResolveRange("bytes=100-199", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(100), spec.Start)
	assert.Equal(t, int64(199), spec.End)
	assert.Equal(t, int64(100), spec.Length())

	// End past the file clamps to the last byte.
	spec, err = ResolveRange("bytes=900-1200", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(900), spec.Start)
	assert.Equal(t, int64(999), spec.End)
	assert.Equal(t, int64(100), spec.Length())
}

func TestResolveRange_CaseInsensitiveUnit(t *testing.T) {
	spec, err := ResolveRange("Bytes=0-9", 1000)
	require.NoError(t, err)
	require.NotNil(t, spec)
	assert.Equal(t, int64(0), spec.Start)
	assert.Equal(t, int64(9), spec.End)
}

func TestResolveRange_Unsatisfiable(t *testing.T) {
	tests := []struct {
		name   string
		header string
		size   int64
	}{
		{"start past end", "bytes=500-100", 1000},
		{"start at size", "bytes=1000-", 1000},
		{"start past size", "bytes=2000-3000", 1000},
		{"zero suffix", "bytes=-0", 1000},
		{"empty file", "bytes=0-", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ResolveRange(tt.header, tt.size)
			assert.Nil(t, spec)
			var rangeErr *RangeNotSatisfiableError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.size, rangeErr.Size)
		})
	}
}
