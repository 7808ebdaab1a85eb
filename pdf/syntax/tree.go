package syntax

import (
	"iter"

	"github.com/dhamidi/pdfc/pdf/green"
	"github.com/dhamidi/pdfc/pdf/parser"
)

// Node is a green node placed at an absolute offset, with a link to its
// parent. Nodes are created on the fly while navigating and are cheap.
type Node struct {
	green  *green.Node
	parent *Node
	offset int
}

func NewRoot(g *green.Node) *Node {
	return &Node{green: g}
}

func (n *Node) Green() *green.Node {
	return n.green
}

func (n *Node) Kind() parser.SyntaxKind {
	return n.green.Kind()
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) TextRange() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.Len()}
}

func (n *Node) Text() []byte {
	return n.green.Text()
}

// Token is a green token placed at an absolute offset.
type Token struct {
	green  *green.Token
	parent *Node
	offset int
}

func (t *Token) Green() *green.Token {
	return t.green
}

func (t *Token) Kind() parser.SyntaxKind {
	return t.green.Kind()
}

func (t *Token) Text() []byte {
	return t.green.Text()
}

func (t *Token) Parent() *Node {
	return t.parent
}

func (t *Token) TextRange() TextRange {
	return TextRange{Start: t.offset, End: t.offset + t.green.Len()}
}

// Element is a child of a node: exactly one of Node and Token is set.
type Element struct {
	Node  *Node
	Token *Token
}

func (e Element) Kind() parser.SyntaxKind {
	if e.Node != nil {
		return e.Node.Kind()
	}
	return e.Token.Kind()
}

func (e Element) TextRange() TextRange {
	if e.Node != nil {
		return e.Node.TextRange()
	}
	return e.Token.TextRange()
}

// ChildrenWithTokens yields every direct child in order.
func (n *Node) ChildrenWithTokens() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		offset := n.offset
		for _, c := range n.green.Children() {
			var elem Element
			if g, ok := c.Node(); ok {
				elem.Node = &Node{green: g, parent: n, offset: offset}
			} else {
				g, _ := c.Token()
				elem.Token = &Token{green: g, parent: n, offset: offset}
			}
			offset += c.Len()
			if !yield(elem) {
				return
			}
		}
	}
}

// Children yields the direct child nodes.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := range n.ChildrenWithTokens() {
			if c.Node != nil && !yield(c.Node) {
				return
			}
		}
	}
}

// Tokens yields the direct child tokens.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for c := range n.ChildrenWithTokens() {
			if c.Token != nil && !yield(c.Token) {
				return
			}
		}
	}
}

// Descendants yields n and every node below it in preorder.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.descendants(yield)
	}
}

func (n *Node) descendants(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !c.descendants(yield) {
			return false
		}
	}
	return true
}

// DescendantTokens yields every leaf below n in source order.
func (n *Node) DescendantTokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.descendantTokens(yield)
	}
}

func (n *Node) descendantTokens(yield func(*Token) bool) bool {
	for c := range n.ChildrenWithTokens() {
		if c.Token != nil {
			if !yield(c.Token) {
				return false
			}
			continue
		}
		if !c.Node.descendantTokens(yield) {
			return false
		}
	}
	return true
}

// FirstChild returns the first direct child node of the given kind.
func (n *Node) FirstChild(kind parser.SyntaxKind) *Node {
	for c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// FirstToken returns the first direct child token of the given kind.
func (n *Node) FirstToken(kind parser.SyntaxKind) *Token {
	for t := range n.Tokens() {
		if t.Kind() == kind {
			return t
		}
	}
	return nil
}

// TokenAtOffset returns the leaf covering offset. At a boundary between
// two tokens the one starting there wins; at the end of input the last
// token is returned.
func (n *Node) TokenAtOffset(offset int) *Token {
	r := n.TextRange()
	if offset < r.Start || offset > r.End {
		return nil
	}
	var last *Element
	for c := range n.ChildrenWithTokens() {
		cr := c.TextRange()
		if cr.IsEmpty() {
			continue
		}
		if cr.Contains(offset) {
			if c.Token != nil {
				return c.Token
			}
			return c.Node.TokenAtOffset(offset)
		}
		last = &c
	}
	if last == nil || offset != r.End {
		return nil
	}
	if last.Token != nil {
		return last.Token
	}
	return last.Node.TokenAtOffset(offset)
}

// Ancestors yields n, its parent, and so on up to the root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}
