package edition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Edition
	}{
		{"", Latest},
		{"latest", Latest},
		{"1.0", Pdf10},
		{"1.7", Pdf17},
		{"pdf-1.4", Pdf14},
		{"PDF-2.0", Pdf20},
		{"pdf17", Pdf17},
		{" 1.2 ", Pdf12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("3.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestStringRoundTrip(t *testing.T) {
	for _, e := range All() {
		got, err := Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	assert.Equal(t, "Edition(42)", Edition(42).String())
}

func TestOrdering(t *testing.T) {
	assert.True(t, Pdf20.AtLeast(Pdf12))
	assert.True(t, Pdf12.AtLeast(Pdf12))
	assert.False(t, Pdf11.AtLeast(Pdf12))
	assert.Equal(t, Pdf20, Latest)
}
