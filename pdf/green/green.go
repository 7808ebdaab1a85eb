// Package green implements the immutable concrete syntax tree. Nodes know
// their kind, their children and their byte length, but not their
// position: the same subtree can appear in many trees and many places.
// Positions are computed by the syntax package on top of this.
package green

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"iter"

	"github.com/cespare/xxhash/v2"

	"github.com/dhamidi/pdfc/pdf/parser"
)

// Token is a leaf. Its text is owned by the token and must not be
// modified by callers.
type Token struct {
	kind parser.SyntaxKind
	text []byte
	hash uint64
}

// NewToken copies text into a new token.
func NewToken(kind parser.SyntaxKind, text []byte) *Token {
	return &Token{
		kind: kind,
		text: bytes.Clone(text),
		hash: tokenHash(kind, text),
	}
}

func (t *Token) Kind() parser.SyntaxKind {
	return t.kind
}

func (t *Token) Text() []byte {
	return t.text
}

func (t *Token) Len() int {
	return len(t.text)
}

func (t *Token) Equal(other *Token) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return t.hash == other.hash && t.kind == other.kind && bytes.Equal(t.text, other.text)
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

// Node is an interior node. The length is cached and always equals the
// sum of the children's lengths.
type Node struct {
	kind     parser.SyntaxKind
	children []Element
	textLen  int
	hash     uint64
}

// NewNode builds a node over children. The slice is copied.
func NewNode(kind parser.SyntaxKind, children []Element) *Node {
	n := &Node{
		kind:     kind,
		children: make([]Element, len(children)),
	}
	copy(n.children, children)
	for _, c := range n.children {
		n.textLen += c.Len()
	}
	n.hash = nodeHash(kind, n.children)
	return n
}

func (n *Node) Kind() parser.SyntaxKind {
	return n.kind
}

func (n *Node) Len() int {
	return n.textLen
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) Child(i int) Element {
	return n.children[i]
}

func (n *Node) Children() iter.Seq2[int, Element] {
	return func(yield func(int, Element) bool) {
		for i, c := range n.children {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Tokens yields every leaf below n in source order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for _, c := range n.children {
		if c.token != nil {
			if !yield(c.token) {
				return false
			}
			continue
		}
		if !c.node.walkTokens(yield) {
			return false
		}
	}
	return true
}

// Text concatenates the text of all tokens below n.
func (n *Node) Text() []byte {
	var buf bytes.Buffer
	buf.Grow(n.textLen)
	n.WriteTo(&buf)
	return buf.Bytes()
}

func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for tok := range n.Tokens() {
		k, err := w.Write(tok.text)
		total += int64(k)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Equal reports structural equality: same kinds, same shape, same text.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.hash != other.hash || n.kind != other.kind || n.textLen != other.textLen || len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// ReplaceChild returns a copy of n with child i replaced. n itself and all
// other children are shared, not copied.
func (n *Node) ReplaceChild(i int, elem Element) *Node {
	if i < 0 || i >= len(n.children) {
		panic(fmt.Sprintf("child index %d out of range [0, %d)", i, len(n.children)))
	}
	children := make([]Element, len(n.children))
	copy(children, n.children)
	children[i] = elem
	return NewNode(n.kind, children)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %d", n.kind, n.textLen)
}

// Element is either a node or a token.
type Element struct {
	node  *Node
	token *Token
}

func NodeElement(n *Node) Element {
	return Element{node: n}
}

func TokenElement(t *Token) Element {
	return Element{token: t}
}

func (e Element) Node() (*Node, bool) {
	return e.node, e.node != nil
}

func (e Element) Token() (*Token, bool) {
	return e.token, e.token != nil
}

func (e Element) Kind() parser.SyntaxKind {
	if e.node != nil {
		return e.node.kind
	}
	return e.token.kind
}

func (e Element) Len() int {
	if e.node != nil {
		return e.node.textLen
	}
	return len(e.token.text)
}

func (e Element) Equal(other Element) bool {
	if e.node != nil {
		return other.node != nil && e.node.Equal(other.node)
	}
	return other.token != nil && e.token.Equal(other.token)
}

func (e Element) hash() uint64 {
	if e.node != nil {
		return e.node.hash
	}
	return e.token.hash
}

func tokenHash(kind parser.SyntaxKind, text []byte) uint64 {
	d := xxhash.New()
	var kb [2]byte
	binary.LittleEndian.PutUint16(kb[:], uint16(kind))
	d.Write(kb[:])
	d.Write(text)
	return d.Sum64()
}

func nodeHash(kind parser.SyntaxKind, children []Element) uint64 {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], uint16(kind))
	d.Write(buf[:2])
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[:], c.hash())
		d.Write(buf[:])
	}
	return d.Sum64()
}
