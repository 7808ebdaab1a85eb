package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/pdfc/pdf/parser"
	"github.com/dhamidi/pdfc/pdf/syntax"
)

// DocumentSymbols outlines a document: indirect objects with their
// dictionary keys, cross-reference tables with their subsections, the
// trailer and startxref.
func DocumentSymbols(p syntax.Parse, idx *syntax.LineIndex) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for n := range p.Tree().Children() {
		if sym, ok := topSymbol(n, idx); ok {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func topSymbol(n *syntax.Node, idx *syntax.LineIndex) (protocol.DocumentSymbol, bool) {
	switch n.Kind() {
	case parser.KindIndirectObjectExpr:
		return objectSymbol(n, idx)
	case parser.KindXRefTable:
		sym := newSymbol(idx, n, "xref", protocol.SymbolKindNamespace)
		for section := range n.Children() {
			for sub := range section.Children() {
				if sub.Kind() == parser.KindXRefSubsection {
					sym.Children = append(sym.Children, subsectionSymbol(sub, idx))
				}
			}
		}
		return sym, true
	case parser.KindTrailer:
		sym := newSymbol(idx, n, "trailer", protocol.SymbolKindStruct)
		if dict := n.FirstChild(parser.KindDictionaryExpr); dict != nil {
			sym.Children = keySymbols(dict, idx)
		}
		if sx := n.FirstChild(parser.KindStartXRef); sx != nil {
			sym.Children = append(sym.Children, startXRefSymbol(sx, idx))
		}
		return sym, true
	case parser.KindStartXRef:
		return startXRefSymbol(n, idx), true
	}
	return protocol.DocumentSymbol{}, false
}

func objectSymbol(n *syntax.Node, idx *syntax.LineIndex) (protocol.DocumentSymbol, bool) {
	num, gen := n.ObjectID()
	if num == nil || gen == nil {
		return protocol.DocumentSymbol{}, false
	}
	name := fmt.Sprintf("%s %s obj", num.Text(), gen.Text())
	sym := newSymbol(idx, n, name, protocol.SymbolKindObject)
	if id := n.FirstChild(parser.KindIndirectObjectID); id != nil {
		sym.SelectionRange = toRange(idx, id.TextRange())
	}

	var detail []string
	body := n.Body()
	if body != nil && body.Kind() == parser.KindDictionaryExpr {
		if t := nameValue(body.Lookup("Type")); t != "" {
			detail = append(detail, "/"+t)
		}
		sym.Children = keySymbols(body, idx)
	}
	if n.Stream() != nil {
		detail = append(detail, "stream")
	}
	if len(detail) > 0 {
		d := strings.Join(detail, " ")
		sym.Detail = &d
	}
	return sym, true
}

func subsectionSymbol(n *syntax.Node, idx *syntax.LineIndex) protocol.DocumentSymbol {
	var header []string
	for c := range n.Children() {
		if c.Kind() != parser.KindLiteral || len(header) == 2 {
			break
		}
		header = append(header, string(c.Text()))
	}
	entries := 0
	for c := range n.Children() {
		if c.Kind() == parser.KindXRefEntry {
			entries++
		}
	}
	sym := newSymbol(idx, n, strings.Join(header, " "), protocol.SymbolKindArray)
	detail := fmt.Sprintf("%d entries", entries)
	sym.Detail = &detail
	return sym
}

func startXRefSymbol(n *syntax.Node, idx *syntax.LineIndex) protocol.DocumentSymbol {
	sym := newSymbol(idx, n, "startxref", protocol.SymbolKindNumber)
	if lit := n.FirstChild(parser.KindLiteral); lit != nil {
		offset := string(lit.Text())
		sym.Detail = &offset
	}
	return sym
}

func keySymbols(dict *syntax.Node, idx *syntax.LineIndex) []protocol.DocumentSymbol {
	var syms []protocol.DocumentSymbol
	for _, e := range dict.DictEntries() {
		key := e.KeyName()
		if key == "" {
			continue
		}
		r := e.Key.TextRange()
		if e.Value != nil {
			r.End = e.Value.TextRange().End
		}
		sym := protocol.DocumentSymbol{
			Name:           "/" + key,
			Kind:           protocol.SymbolKindKey,
			Range:          toRange(idx, r),
			SelectionRange: toRange(idx, e.Key.TextRange()),
		}
		if e.Value != nil {
			if v := valueSummary(e.Value); v != "" {
				sym.Detail = &v
			}
		}
		syms = append(syms, sym)
	}
	return syms
}

func newSymbol(idx *syntax.LineIndex, n *syntax.Node, name string, kind protocol.SymbolKind) protocol.DocumentSymbol {
	r := toRange(idx, n.TextRange())
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: r,
	}
}

// nameValue decodes n when it is a Name literal.
func nameValue(n *syntax.Node) string {
	if n == nil {
		return ""
	}
	t := n.LiteralToken()
	if t == nil || t.Kind() != parser.KindName {
		return ""
	}
	name, err := syntax.DecodeName(t.Text())
	if err != nil {
		return ""
	}
	return name
}

// valueSummary is a one-line description of a dictionary value.
func valueSummary(n *syntax.Node) string {
	switch n.Kind() {
	case parser.KindLiteral:
		if t := n.LiteralToken(); t != nil {
			return string(t.Text())
		}
	case parser.KindIndirectReferenceExpr:
		if num, gen := n.ObjectID(); num != nil {
			return fmt.Sprintf("%s %s R", num.Text(), gen.Text())
		}
	case parser.KindArrayExpr:
		count := 0
		for range n.Children() {
			count++
		}
		return fmt.Sprintf("[%d]", count)
	case parser.KindDictionaryExpr:
		return fmt.Sprintf("<<%d>>", len(n.DictEntries()))
	}
	return ""
}
