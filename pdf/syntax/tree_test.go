package syntax

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pdfc/pdf/parser"
)

const catalog = "1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj"

func TestNavigation(t *testing.T) {
	root := ParseText([]byte(catalog)).Tree()
	obj := root.FirstChild(parser.KindIndirectObjectExpr)
	require.NotNil(t, obj)
	assert.Same(t, root, obj.Parent())
	assert.Equal(t, TextRange{Start: 0, End: len(catalog)}, obj.TextRange())

	num, gen := obj.ObjectID()
	assert.Equal(t, "1", string(num.Text()))
	assert.Equal(t, "0", string(gen.Text()))

	dict := obj.Body()
	require.NotNil(t, dict)
	assert.Equal(t, parser.KindDictionaryExpr, dict.Kind())
	assert.Nil(t, obj.Stream())

	entries := dict.DictEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Type", entries[0].KeyName())
	assert.Equal(t, "Pages", entries[1].KeyName())
	assert.Equal(t, parser.KindIndirectReferenceExpr, dict.Lookup("Pages").Kind())
	assert.Nil(t, dict.Lookup("Kids"))
	assert.Nil(t, obj.Lookup("Type"), "only dictionaries have entries")
}

func TestTokenAtOffset(t *testing.T) {
	root := ParseText([]byte(catalog)).Tree()

	tok := root.TokenAtOffset(12)
	require.NotNil(t, tok)
	assert.Equal(t, parser.KindName, tok.Kind())
	assert.Equal(t, "/Type", string(tok.Text()))
	assert.Equal(t, TextRange{Start: 11, End: 16}, tok.TextRange())
	assert.Equal(t, parser.KindLiteral, tok.Parent().Kind())

	var kinds []parser.SyntaxKind
	for n := range tok.Parent().Ancestors() {
		kinds = append(kinds, n.Kind())
	}
	assert.Equal(t, []parser.SyntaxKind{
		parser.KindLiteral, parser.KindDictionaryExpr, parser.KindIndirectObjectExpr, parser.KindPdfDocument,
	}, kinds)

	assert.Equal(t, parser.KindLDict, root.TokenAtOffset(8).Kind(), "a token starting at the offset wins")
	assert.Equal(t, parser.KindEndobjKw, root.TokenAtOffset(len(catalog)).Kind())
	assert.Nil(t, root.TokenAtOffset(len(catalog)+1))
	assert.Nil(t, ParseText(nil).Tree().TokenAtOffset(0))
}

func TestDescendantsAreInSourceOrder(t *testing.T) {
	root := ParseText([]byte(catalog)).Tree()

	var text []byte
	for tok := range root.DescendantTokens() {
		text = append(text, tok.Text()...)
	}
	assert.Equal(t, catalog, string(text))

	var starts []int
	for n := range root.Descendants() {
		starts = append(starts, n.TextRange().Start)
	}
	assert.True(t, slices.IsSorted(starts))
	assert.Equal(t, parser.KindPdfDocument, func() parser.SyntaxKind {
		for n := range root.Descendants() {
			return n.Kind()
		}
		return parser.KindTombstone
	}())
}

func TestDebug(t *testing.T) {
	p := ParseText([]byte("[/A"))
	want := `PdfDocument@0..3
  ArrayExpr@0..3
    LBrack@0..1 "["
    Literal@1..3
      Name@1..3 "/A"
error 3..3: expected ` + "`]`" + `
`
	assert.Equal(t, want, p.DebugDump())

	arr := p.Tree().FirstChild(parser.KindArrayExpr)
	assert.Equal(t, "ArrayExpr@0..3\n  LBrack@0..1 \"[\"\n  Literal@1..3\n    Name@1..3 \"/A\"\n", Debug(arr))
}

func TestLineIndex(t *testing.T) {
	idx := NewLineIndex([]byte("a\nbc\r\nd\re"))
	assert.Equal(t, 4, idx.Lines())

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 0},
		{3, 1, 1},
		{6, 2, 0},
		{7, 2, 1},
		{8, 3, 0},
		{9, 3, 1},
		{100, 3, 1},
		{-5, 0, 0},
	}
	for _, tt := range tests {
		line, col := idx.LineCol(tt.offset)
		assert.Equal(t, tt.line, line, "line of %d", tt.offset)
		assert.Equal(t, tt.col, col, "column of %d", tt.offset)
	}

	assert.Equal(t, 3, idx.Offset(1, 1))
	assert.Equal(t, 6, idx.Offset(1, 50))
	assert.Equal(t, 9, idx.Offset(9, 0))
	assert.Equal(t, 0, idx.Offset(-1, 4))
}

func TestLineIndexUTF16(t *testing.T) {
	// "é" is two bytes and one unit, the emoji four bytes and two units.
	idx := NewLineIndex([]byte("x\n(é😀)\xff 1\n"))

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 0, 0},
		{3, 1, 1},
		{5, 1, 2},
		{9, 1, 4},
		{10, 1, 5},
		{11, 1, 6},
		{13, 1, 8},
		{14, 2, 0},
	}
	for _, tt := range tests {
		line, col := idx.LineColUTF16(tt.offset)
		assert.Equal(t, tt.line, line, "line of %d", tt.offset)
		assert.Equal(t, tt.col, col, "column of %d", tt.offset)
		assert.Equal(t, tt.offset, idx.OffsetUTF16(line, col), "offset of %d:%d", line, col)
	}

	assert.Equal(t, 9, idx.OffsetUTF16(1, 3), "inside a surrogate pair")
	assert.Equal(t, 14, idx.OffsetUTF16(1, 50))
	assert.Equal(t, 14, idx.OffsetUTF16(5, 0))
	assert.Equal(t, 0, idx.OffsetUTF16(-1, 2))
}

func TestTextRange(t *testing.T) {
	r := TextRange{Start: 2, End: 5}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(5))
	assert.True(t, TextRange{Start: 4, End: 4}.Contains(4))
	assert.Equal(t, "2..5", r.String())
}
