package green

import (
	"fmt"

	"github.com/dhamidi/pdfc/pdf/parser"
)

type parentFrame struct {
	kind       parser.SyntaxKind
	firstChild int
}

// Builder assembles a tree bottom-up from a stream of StartNode, Token
// and FinishNode calls.
type Builder struct {
	cache    *NodeCache
	parents  []parentFrame
	children []Element
}

// NewBuilder returns a builder interning into cache. A nil cache gives the
// builder a private one.
func NewBuilder(cache *NodeCache) *Builder {
	if cache == nil {
		cache = NewNodeCache()
	}
	return &Builder{cache: cache}
}

func (b *Builder) Token(kind parser.SyntaxKind, text []byte) {
	b.children = append(b.children, TokenElement(b.cache.Token(kind, text)))
}

func (b *Builder) StartNode(kind parser.SyntaxKind) {
	b.parents = append(b.parents, parentFrame{kind: kind, firstChild: len(b.children)})
}

func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("FinishNode without a matching StartNode")
	}
	top := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	node := b.cache.Node(top.kind, b.children[top.firstChild:])
	b.children = append(b.children[:top.firstChild], NodeElement(node))
}

// Checkpoint marks the current position so that a node can later be
// started there with StartNodeAt.
type Checkpoint int

func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNodeAt starts a node that adopts every element added since
// checkpoint.
func (b *Builder) StartNodeAt(cp Checkpoint, kind parser.SyntaxKind) {
	if int(cp) > len(b.children) {
		panic(fmt.Sprintf("checkpoint %d is past the %d pending children", cp, len(b.children)))
	}
	if len(b.parents) > 0 && int(cp) < b.parents[len(b.parents)-1].firstChild {
		panic("checkpoint is outside the current node")
	}
	b.parents = append(b.parents, parentFrame{kind: kind, firstChild: int(cp)})
}

// Finish returns the root. Exactly one node must have been built at the
// top level.
func (b *Builder) Finish() *Node {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("%d nodes still open", len(b.parents)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("expected a single root, got %d elements", len(b.children)))
	}
	root, ok := b.children[0].Node()
	if !ok {
		panic("the root must be a node")
	}
	b.children = nil
	return root
}
