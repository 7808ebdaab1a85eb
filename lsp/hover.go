package lsp

import (
	"fmt"
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pdfc/pdf/parser"
	"github.com/dhamidi/pdfc/pdf/syntax"
)

// Hover describes the token at offset: its kind, the node containing it
// and, for literals, the decoded value. It returns nil over trivia or
// outside the text.
func Hover(p syntax.Parse, idx *syntax.LineIndex, offset int) *protocol.Hover {
	t := p.Tree().TokenAtOffset(offset)
	if t == nil || t.Kind().IsTrivia() {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "`%s`", t.Kind())
	if parent := t.Parent(); parent != nil {
		fmt.Fprintf(&b, " in `%s`", parent.Kind())
	}
	if value, ok := decodedValue(t); ok {
		fmt.Fprintf(&b, "\n\n%s", value)
	}
	for n := range t.Parent().Ancestors() {
		if n.Kind() != parser.KindIndirectReferenceExpr {
			continue
		}
		if num, gen := n.ObjectID(); num != nil {
			fmt.Fprintf(&b, "\n\nreference to object %s %s", num.Text(), gen.Text())
		}
		break
	}

	r := toRange(idx, t.TextRange())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: b.String(),
		},
		Range: &r,
	}
}

func decodedValue(t *syntax.Token) (string, bool) {
	switch t.Kind() {
	case parser.KindName:
		name, err := syntax.DecodeName(t.Text())
		if err != nil {
			return "", false
		}
		return "name " + strconv.Quote(name), true
	case parser.KindLiteralString:
		raw, err := syntax.UnescapeLiteralString(t.Text())
		if err != nil {
			return "", false
		}
		return "text " + strconv.Quote(syntax.DecodeTextString(raw)), true
	case parser.KindHexString:
		raw, err := syntax.DecodeHexString(t.Text())
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%d bytes, text %s", len(raw), strconv.Quote(syntax.DecodeTextString(raw))), true
	case parser.KindIntNumber:
		v, err := syntax.ParseInt(t.Text())
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("integer %d", v), true
	case parser.KindRealNumber:
		v, err := syntax.ParseReal(t.Text())
		if err != nil {
			return "", false
		}
		return "real " + strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return "", false
}
