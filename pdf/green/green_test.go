package green

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/pdfc/pdf/parser"
)

// reference builds `7 0 R` the way the parser shapes it.
func reference(b *Builder, num string) {
	b.StartNode(parser.KindIndirectReferenceExpr)
	b.StartNode(parser.KindLiteral)
	b.Token(parser.KindIntNumber, []byte(num))
	b.FinishNode()
	b.Token(parser.KindWhitespace, []byte(" "))
	b.StartNode(parser.KindLiteral)
	b.Token(parser.KindIntNumber, []byte("0"))
	b.FinishNode()
	b.Token(parser.KindWhitespace, []byte(" "))
	b.Token(parser.KindRKw, []byte("R"))
	b.FinishNode()
}

func buildArray(cache *NodeCache) *Node {
	b := NewBuilder(cache)
	b.StartNode(parser.KindArrayExpr)
	b.Token(parser.KindLBrack, []byte("["))
	reference(b, "7")
	b.Token(parser.KindWhitespace, []byte(" "))
	reference(b, "8")
	b.Token(parser.KindRBrack, []byte("]"))
	b.FinishNode()
	return b.Finish()
}

func TestBuilder(t *testing.T) {
	root := buildArray(nil)
	assert.Equal(t, parser.KindArrayExpr, root.Kind())
	assert.Equal(t, "[7 0 R 8 0 R]", string(root.Text()))
	assert.Equal(t, len("[7 0 R 8 0 R]"), root.Len())
	require.Equal(t, 5, root.NumChildren())

	ref, ok := root.Child(1).Node()
	require.True(t, ok)
	assert.Equal(t, parser.KindIndirectReferenceExpr, ref.Kind())
	assert.Equal(t, 5, ref.Len())

	tok, ok := root.Child(0).Token()
	require.True(t, ok)
	assert.Equal(t, parser.KindLBrack, tok.Kind())

	var kinds []parser.SyntaxKind
	for _, c := range root.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []parser.SyntaxKind{
		parser.KindLBrack, parser.KindIndirectReferenceExpr, parser.KindWhitespace,
		parser.KindIndirectReferenceExpr, parser.KindRBrack,
	}, kinds)
}

func TestLengthIsSumOfChildren(t *testing.T) {
	var check func(n *Node)
	check = func(n *Node) {
		sum := 0
		for _, c := range n.Children() {
			sum += c.Len()
			if child, ok := c.Node(); ok {
				check(child)
			}
		}
		assert.Equal(t, sum, n.Len(), "node %s", n)
	}
	check(buildArray(nil))
}

func TestCacheSharesRepeatedSubtrees(t *testing.T) {
	cache := NewNodeCache()
	root := buildArray(cache)

	first, _ := root.Child(1).Node()
	second, _ := root.Child(3).Node()
	gen1, _ := first.Child(2).Node()
	gen2, _ := second.Child(2).Node()
	assert.Same(t, gen1, gen2, "the `0` generation literal is interned")
	assert.NotSame(t, first, second)
	assert.Positive(t, cache.Hits())

	again := buildArray(cache)
	assert.True(t, root.Equal(again))
	againFirst, _ := again.Child(1).Node()
	assert.Same(t, first.Child(0).node, againFirst.Child(0).node)
}

func TestCacheSkipsLargeNodes(t *testing.T) {
	cache := NewNodeCache()
	children := []Element{
		TokenElement(cache.Token(parser.KindLBrack, []byte("["))),
		TokenElement(cache.Token(parser.KindWhitespace, []byte(" "))),
		TokenElement(cache.Token(parser.KindWhitespace, []byte(" "))),
		TokenElement(cache.Token(parser.KindRBrack, []byte("]"))),
	}
	a := cache.Node(parser.KindArrayExpr, children)
	b := cache.Node(parser.KindArrayExpr, children)
	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
}

func TestEqual(t *testing.T) {
	a := buildArray(nil)
	b := buildArray(nil)
	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(nil))

	lit := NewNode(parser.KindLiteral, []Element{TokenElement(NewToken(parser.KindIntNumber, []byte("9")))})
	assert.False(t, a.Equal(a.ReplaceChild(1, NodeElement(lit))))

	relabeled := NewNode(parser.KindDictionaryExpr, childrenOf(a))
	assert.False(t, a.Equal(relabeled))
}

func childrenOf(n *Node) []Element {
	var out []Element
	for _, c := range n.Children() {
		out = append(out, c)
	}
	return out
}

func TestReplaceChildShares(t *testing.T) {
	root := buildArray(nil)
	nine := NewNode(parser.KindLiteral, []Element{TokenElement(NewToken(parser.KindIntNumber, []byte("9")))})
	edited := root.ReplaceChild(3, NodeElement(nine))

	assert.Equal(t, "[7 0 R 9]", string(edited.Text()))
	assert.Equal(t, "[7 0 R 8 0 R]", string(root.Text()), "the original is untouched")

	before, _ := root.Child(1).Node()
	after, _ := edited.Child(1).Node()
	assert.Same(t, before, after)

	assert.Panics(t, func() { root.ReplaceChild(5, NodeElement(nine)) })
}

func TestTokenOwnsItsText(t *testing.T) {
	text := []byte("/Type")
	tok := NewToken(parser.KindName, text)
	text[1] = 'X'
	assert.Equal(t, "/Type", string(tok.Text()))
	assert.Equal(t, 5, tok.Len())
	assert.True(t, tok.Equal(NewToken(parser.KindName, []byte("/Type"))))
	assert.False(t, tok.Equal(NewToken(parser.KindLiteralString, []byte("/Type"))))
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestWriteTo(t *testing.T) {
	root := buildArray(nil)

	var buf bytes.Buffer
	n, err := root.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(root.Len()), n)
	assert.Equal(t, root.Text(), buf.Bytes())

	n, err = root.WriteTo(&failingWriter{n: 2})
	assert.Error(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCheckpoint(t *testing.T) {
	b := NewBuilder(nil)
	b.StartNode(parser.KindPdfDocument)
	cp := b.Checkpoint()
	b.StartNode(parser.KindXRefSection)
	b.Token(parser.KindXrefKw, []byte("xref"))
	b.FinishNode()
	b.StartNodeAt(cp, parser.KindXRefTable)
	b.FinishNode()
	b.FinishNode()
	root := b.Finish()

	table, ok := root.Child(0).Node()
	require.True(t, ok)
	assert.Equal(t, parser.KindXRefTable, table.Kind())
	section, ok := table.Child(0).Node()
	require.True(t, ok)
	assert.Equal(t, parser.KindXRefSection, section.Kind())
}

func TestBuilderMisuse(t *testing.T) {
	assert.Panics(t, func() { NewBuilder(nil).FinishNode() })
	assert.Panics(t, func() {
		b := NewBuilder(nil)
		b.StartNode(parser.KindPdfDocument)
		b.Finish()
	})
	assert.Panics(t, func() {
		b := NewBuilder(nil)
		b.Token(parser.KindWhitespace, []byte(" "))
		b.Finish()
	})
	assert.Panics(t, func() { NewBuilder(nil).StartNodeAt(3, parser.KindArrayExpr) })
}

func TestTokensIterationStopsEarly(t *testing.T) {
	root := buildArray(nil)
	count := 0
	for range root.Tokens() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}
