package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

func TestEncoders(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"tree",
			"null",
			"PdfDocument@0..4\n  Literal@0..4\n    NullKw@0..4 \"null\"\n",
		},
		{
			"json",
			"null",
			`{
  "tree": {
    "kind": "PdfDocument",
    "range": {"start": 0, "end": 4},
    "children": [
      {
        "kind": "Literal",
        "range": {"start": 0, "end": 4},
        "children": [
          {"kind": "NullKw", "range": {"start": 0, "end": 4}, "text": "null"}
        ]
      }
    ]
  },
  "errors": []
}`,
		},
		{
			"line",
			"null\n[1",
			"doc.pdf:2:3: expected `]`\n",
		},
		{
			"line",
			"null",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := New(tt.name, &buf, "doc.pdf")
			require.NoError(t, err)
			require.NoError(t, enc.Encode(syntax.ParseText([]byte(tt.input))))
			if tt.name == "json" {
				assert.JSONEq(t, tt.want, buf.String())
				return
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestMarshalTextMatchesEncode(t *testing.T) {
	var buf bytes.Buffer
	enc := NewTreeEncoder(&buf)
	require.NoError(t, enc.Encode(syntax.ParseText([]byte("[1]"))))

	text, err := enc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(text))
}

func TestMarshalTextBeforeEncode(t *testing.T) {
	want := map[string]string{
		"tree": "",
		"json": "{\n  \"tree\": null,\n  \"errors\": []\n}\n",
		"line": "",
	}
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			enc, err := New(name, &bytes.Buffer{}, "doc.pdf")
			require.NoError(t, err)
			var text []byte
			require.NotPanics(t, func() { text, err = enc.MarshalText() })
			require.NoError(t, err)
			assert.Equal(t, want[name], string(text))
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	_, err := New("xml", &bytes.Buffer{}, "")
	assert.EqualError(t, err, "unknown format: xml")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriteError(t *testing.T) {
	enc := NewLineEncoder(failingWriter{}, "doc.pdf")
	err := enc.Encode(syntax.ParseText([]byte("[")))
	assert.EqualError(t, err, "disk full")
}
