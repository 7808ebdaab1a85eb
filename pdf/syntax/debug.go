package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Debug renders n as an indented outline, one element per line:
//
//	ArrayExpr@0..5
//	  LBrack@0..1 "["
//	  ...
func Debug(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	writeDebug(&sb, n, 0)
	return sb.String()
}

func writeDebug(w io.Writer, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s@%s\n", indent, n.Kind(), n.TextRange())
	for c := range n.ChildrenWithTokens() {
		if c.Node != nil {
			writeDebug(w, c.Node, depth+1)
			continue
		}
		fmt.Fprintf(w, "%s  %s@%s %q\n", indent, c.Token.Kind(), c.Token.TextRange(), c.Token.Text())
	}
}

// DebugDump renders the tree followed by one line per error.
func (p Parse) DebugDump() string {
	var sb strings.Builder
	if root := p.Tree(); root != nil {
		writeDebug(&sb, root, 0)
	}
	for _, e := range p.errors {
		fmt.Fprintf(&sb, "error %s: %s\n", e.Range, e.Msg)
	}
	return sb.String()
}
