package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

const sample = `1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Length 3 >>
stream
abc
endstream
endobj
xref
0 3
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
trailer
<< /Size 3 /Root 1 0 R >>
startxref
120
`

func parseSample(t *testing.T, text string) (syntax.Parse, *syntax.LineIndex) {
	t.Helper()
	return syntax.ParseText([]byte(text)), syntax.NewLineIndex([]byte(text))
}

func pos(line, col int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
}

func TestDiagnostics(t *testing.T) {
	p, idx := parseSample(t, "1 0 obj\n<< /A >>\nendobj")
	diags := Diagnostics(p, idx)
	require.Len(t, diags, 1)

	d := diags[0]
	assert.Equal(t, "dictionary is missing a value for the last key", d.Message)
	assert.Equal(t, protocol.Range{Start: pos(1, 3), End: pos(1, 5)}, d.Range)
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "pdfc", *d.Source)
}

func TestDiagnosticsEmpty(t *testing.T) {
	p, idx := parseSample(t, sample)
	require.True(t, p.Ok(), p.DebugDump())
	diags := Diagnostics(p, idx)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func detail(s protocol.DocumentSymbol) string {
	if s.Detail == nil {
		return ""
	}
	return *s.Detail
}

func TestDocumentSymbols(t *testing.T) {
	p, idx := parseSample(t, sample)
	syms := DocumentSymbols(p, idx)
	require.Len(t, syms, 4)

	catalog := syms[0]
	assert.Equal(t, "1 0 obj", catalog.Name)
	assert.Equal(t, "/Catalog", detail(catalog))
	assert.Equal(t, protocol.SymbolKindObject, catalog.Kind)
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(2, 6)}, catalog.Range)
	assert.Equal(t, protocol.Range{Start: pos(0, 0), End: pos(0, 7)}, catalog.SelectionRange)
	require.Len(t, catalog.Children, 2)
	assert.Equal(t, "/Type", catalog.Children[0].Name)
	assert.Equal(t, "/Catalog", detail(catalog.Children[0]))
	assert.Equal(t, "/Pages", catalog.Children[1].Name)
	assert.Equal(t, "2 0 R", detail(catalog.Children[1]))
	assert.Equal(t, protocol.Range{Start: pos(1, 18), End: pos(1, 30)}, catalog.Children[1].Range)

	stream := syms[1]
	assert.Equal(t, "2 0 obj", stream.Name)
	assert.Equal(t, "stream", detail(stream))
	require.Len(t, stream.Children, 1)
	assert.Equal(t, "3", detail(stream.Children[0]))

	xref := syms[2]
	assert.Equal(t, "xref", xref.Name)
	require.Len(t, xref.Children, 1)
	assert.Equal(t, "0 3", xref.Children[0].Name)
	assert.Equal(t, "3 entries", detail(xref.Children[0]))

	trailer := syms[3]
	assert.Equal(t, "trailer", trailer.Name)
	var names []string
	for _, c := range trailer.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"/Size", "/Root", "startxref"}, names)
	assert.Equal(t, "120", detail(trailer.Children[2]))
}

func TestDocumentSymbolsSkipBrokenObjects(t *testing.T) {
	p, idx := parseSample(t, "obj\nstartxref 9")
	syms := DocumentSymbols(p, idx)
	require.Len(t, syms, 1)
	assert.Equal(t, "startxref", syms[0].Name)
	assert.Equal(t, "9", detail(syms[0]))
}

func hoverText(t *testing.T, h *protocol.Hover) string {
	t.Helper()
	require.NotNil(t, h)
	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	return content.Value
}

func TestHover(t *testing.T) {
	p, idx := parseSample(t, sample)

	tests := []struct {
		name string
		at   protocol.Position
		want string
	}{
		{"name", pos(1, 10), "`Name` in `Literal`\n\nname \"Catalog\""},
		{"reference", pos(1, 25), "`IntNumber` in `Literal`\n\ninteger 2\n\nreference to object 2 0"},
		{"keyword", pos(2, 2), "`EndobjKw` in `IndirectObjectExpr`"},
		{"entry type", pos(11, 17), "`FKw` in `XRefEntryType`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hoverText(t, Hover(p, idx, toOffset(idx, tt.at))))
		})
	}
}

func TestHoverStrings(t *testing.T) {
	p, idx := parseSample(t, "[(a\\051b) <FEFF0041> 1.50]")

	assert.Equal(t, "`LiteralString` in `Literal`\n\ntext \"a)b\"", hoverText(t, Hover(p, idx, 2)))
	assert.Equal(t, "`HexString` in `Literal`\n\n4 bytes, text \"A\"", hoverText(t, Hover(p, idx, 12)))
	assert.Equal(t, "`RealNumber` in `Literal`\n\nreal 1.5", hoverText(t, Hover(p, idx, 22)))
}

func TestHoverNothing(t *testing.T) {
	p, idx := parseSample(t, sample)
	assert.Nil(t, Hover(p, idx, toOffset(idx, pos(1, 2))), "whitespace")
	assert.Nil(t, Hover(p, idx, 10_000), "past the end")
}

func TestHoverRange(t *testing.T) {
	p, idx := parseSample(t, sample)
	h := Hover(p, idx, toOffset(idx, pos(1, 10)))
	require.NotNil(t, h)
	require.NotNil(t, h.Range)
	assert.Equal(t, protocol.Range{Start: pos(1, 9), End: pos(1, 17)}, *h.Range)
}

func TestPositionsCountUTF16Units(t *testing.T) {
	p, idx := parseSample(t, "(é😀) 1")

	assert.Equal(t, 9, toOffset(idx, pos(0, 6)))
	assert.Equal(t, pos(0, 4), toPosition(idx, 7))

	h := Hover(p, idx, toOffset(idx, pos(0, 6)))
	require.NotNil(t, h)
	require.NotNil(t, h.Range)
	assert.Equal(t, protocol.Range{Start: pos(0, 6), End: pos(0, 7)}, *h.Range)
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///home/user/doc%20one.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/doc one.pdf", path)

	path, err = uriToPath("untitled:1")
	require.NoError(t, err)
	assert.Equal(t, "untitled:1", path)

	assert.Equal(t, "file:///home/user/doc%20one.pdf", pathToURI("/home/user/doc one.pdf"))
	assert.Equal(t, "untitled://x", pathToURI("untitled://x"))
}
