package green

import (
	"bytes"
	"sync"

	"github.com/dhamidi/pdfc/pdf/parser"
)

// maxCachedChildren bounds which nodes are interned. Larger nodes are
// rarely repeated and expensive to compare.
const maxCachedChildren = 3

// NodeCache interns tokens and small nodes so that repeated subtrees, like
// the `0 R` of every reference or the entries of a cross-reference table,
// share memory. It is safe for concurrent use.
type NodeCache struct {
	mu     sync.Mutex
	tokens map[uint64][]*Token
	nodes  map[uint64][]*Node
	hits   int
}

func NewNodeCache() *NodeCache {
	return &NodeCache{
		tokens: make(map[uint64][]*Token),
		nodes:  make(map[uint64][]*Node),
	}
}

// Token returns an interned token with the given kind and text.
func (c *NodeCache) Token(kind parser.SyntaxKind, text []byte) *Token {
	h := tokenHash(kind, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.tokens[h] {
		if t.kind == kind && bytes.Equal(t.text, text) {
			c.hits++
			return t
		}
	}
	t := &Token{kind: kind, text: bytes.Clone(text), hash: h}
	c.tokens[h] = append(c.tokens[h], t)
	return t
}

// Node returns a node over children, interned when it is small enough.
// Children are compared by identity, so interning only pays off when the
// children themselves came from this cache.
func (c *NodeCache) Node(kind parser.SyntaxKind, children []Element) *Node {
	if len(children) > maxCachedChildren {
		return NewNode(kind, children)
	}
	h := nodeHash(kind, children)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.nodes[h] {
		if n.kind == kind && sameChildren(n.children, children) {
			c.hits++
			return n
		}
	}
	n := NewNode(kind, children)
	c.nodes[h] = append(c.nodes[h], n)
	return n
}

// Hits is the number of lookups answered from the cache.
func (c *NodeCache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Len is the number of distinct tokens and nodes held.
func (c *NodeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.tokens {
		n += len(b)
	}
	for _, b := range c.nodes {
		n += len(b)
	}
	return n
}

func sameChildren(a, b []Element) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].node != b[i].node || a[i].token != b[i].token {
			return false
		}
	}
	return true
}
