package parser

import (
	"fmt"

	"github.com/dhamidi/pdfc/pdf/edition"
)

// stepLimit bounds the number of lookahead calls between two consumed
// tokens. Exceeding it means the grammar is stuck without consuming input.
const stepLimit = 15_000_000

// maxLookahead is the furthest token Nth may look at.
const maxLookahead = 3

// Parser drives grammar functions over an Input and records what they
// do as a list of events. It never builds a tree itself.
type Parser struct {
	inp         *Input
	pos         int
	events      []Event
	steps       uint32
	edition     edition.Edition
	openMarkers int
}

func NewParser(inp *Input, ed edition.Edition) *Parser {
	return &Parser{inp: inp, edition: ed}
}

func (p *Parser) Edition() edition.Edition {
	return p.edition
}

// Finish returns the event log. Every marker must have been completed or
// abandoned by now.
func (p *Parser) Finish() []Event {
	if p.openMarkers != 0 {
		panic(fmt.Sprintf("%d markers were neither completed nor abandoned", p.openMarkers))
	}
	events := p.events
	p.events = nil
	return events
}

// Current returns the kind of the current token, KindEOF at the end.
func (p *Parser) Current() SyntaxKind {
	return p.Nth(0)
}

// Nth looks n tokens ahead, n <= 3.
func (p *Parser) Nth(n int) SyntaxKind {
	if n > maxLookahead {
		panic(fmt.Sprintf("lookahead of %d tokens exceeds the limit of %d", n, maxLookahead))
	}
	p.steps++
	if p.steps > stepLimit {
		panic(fmt.Sprintf("the parser seems stuck at token %d", p.pos))
	}
	return p.inp.kindAt(p.pos + n)
}

// NthInt returns the value of the integer token n tokens ahead, or -1 if
// that token is not a well-formed integer.
func (p *Parser) NthInt(n int) int64 {
	if p.Nth(n) != KindIntNumber {
		return -1
	}
	return p.inp.intValueAt(p.pos + n)
}

func (p *Parser) At(kind SyntaxKind) bool {
	return p.NthAt(0, kind)
}

func (p *Parser) NthAt(n int, kind SyntaxKind) bool {
	return p.Nth(n) == kind
}

func (p *Parser) AtTS(kinds TokenSet) bool {
	return kinds.Contains(p.Current())
}

func (p *Parser) NthAtTS(n int, kinds TokenSet) bool {
	return kinds.Contains(p.Nth(n))
}

// AtContextualKw checks the contextual classification of the current
// token. PDF has no contextual keywords yet, so this only matches when
// an Input was built with them explicitly.
func (p *Parser) AtContextualKw(kind SyntaxKind) bool {
	return p.inp.contextualKindAt(p.pos) == kind
}

// Eat consumes the current token if it has the given kind.
func (p *Parser) Eat(kind SyntaxKind) bool {
	if !p.At(kind) {
		return false
	}
	p.doBump(kind, 1)
	return true
}

// Bump consumes the current token, which must have the given kind.
func (p *Parser) Bump(kind SyntaxKind) {
	if !p.Eat(kind) {
		panic(fmt.Sprintf("bump: expected %s, found %s", kind, p.Current()))
	}
}

// BumpAny consumes the current token whatever it is. At the end of input
// it does nothing.
func (p *Parser) BumpAny() {
	kind := p.Current()
	if kind == KindEOF {
		return
	}
	p.doBump(kind, 1)
}

// BumpRemap consumes the current token but records it as kind.
func (p *Parser) BumpRemap(kind SyntaxKind) {
	if p.Current() == KindEOF {
		return
	}
	p.doBump(kind, 1)
}

func (p *Parser) doBump(kind SyntaxKind, nRawTokens uint8) {
	p.pos += int(nRawTokens)
	p.steps = 0
	p.push(Event{kind: eventToken, syntaxKind: kind, nRawTokens: nRawTokens})
}

// Error records a diagnostic at the current position without consuming
// anything.
func (p *Parser) Error(msg string) {
	p.push(Event{kind: eventError, msg: msg})
}

// Expect consumes a token of the given kind or reports that it is missing.
func (p *Parser) Expect(kind SyntaxKind) bool {
	if p.Eat(kind) {
		return true
	}
	p.Error(fmt.Sprintf("expected %s", kind.describe()))
	return false
}

// ErrAndBump wraps the current token in an error node.
func (p *Parser) ErrAndBump(msg string) {
	p.ErrRecover(msg, EmptyTokenSet)
}

// ErrRecover reports msg. Unless the current token is in recovery or
// ends the input, it is consumed into an error node.
func (p *Parser) ErrRecover(msg string, recovery TokenSet) {
	if p.AtTS(recovery) || p.At(KindEOF) {
		p.Error(msg)
		return
	}
	m := p.Start()
	p.Error(msg)
	p.BumpAny()
	m.Complete(p, KindError)
}

func (p *Parser) push(ev Event) {
	p.events = append(p.events, ev)
}

// Start opens a node. The returned marker must be completed or abandoned.
func (p *Parser) Start() *Marker {
	pos := len(p.events)
	p.push(tombstone())
	p.openMarkers++
	return &Marker{pos: uint32(pos)}
}

// Marker is an open node: a placeholder Start event in the log.
type Marker struct {
	pos  uint32
	done bool
}

func (m *Marker) defuse(p *Parser) {
	if m.done {
		panic("marker was already completed or abandoned")
	}
	m.done = true
	p.openMarkers--
}

// Complete closes the node as kind.
func (m *Marker) Complete(p *Parser, kind SyntaxKind) CompletedMarker {
	m.defuse(p)
	ev := &p.events[m.pos]
	if ev.kind != eventStart {
		panic(fmt.Sprintf("marker points at %s, want a Start event", *ev))
	}
	ev.syntaxKind = kind
	p.push(Event{kind: eventFinish, syntaxKind: kind})
	return CompletedMarker{startPos: m.pos, kind: kind}
}

// Abandon drops the node. Its children end up in the enclosing node.
func (m *Marker) Abandon(p *Parser) {
	m.defuse(p)
	if int(m.pos) == len(p.events)-1 {
		if !p.events[m.pos].isTombstone() {
			panic(fmt.Sprintf("abandoned marker points at %s", p.events[m.pos]))
		}
		p.events = p.events[:m.pos]
	}
}

// CompletedMarker refers to a finished node so that it can still be
// wrapped into a parent after the fact.
type CompletedMarker struct {
	startPos uint32
	kind     SyntaxKind
}

func (cm CompletedMarker) Kind() SyntaxKind {
	return cm.kind
}

// Precede opens a new node that will become the parent of cm.
func (cm CompletedMarker) Precede(p *Parser) *Marker {
	m := p.Start()
	ev := &p.events[cm.startPos]
	if ev.kind != eventStart {
		panic(fmt.Sprintf("completed marker points at %s, want a Start event", *ev))
	}
	ev.forwardParent = m.pos - cm.startPos
	return m
}

// ExtendTo makes cm start where the earlier marker m started, so that
// anything recorded between the two becomes part of cm. m is consumed.
func (cm CompletedMarker) ExtendTo(p *Parser, m *Marker) CompletedMarker {
	if m.pos >= cm.startPos {
		panic("extend_to: marker must start before the completed node")
	}
	m.defuse(p)
	ev := &p.events[m.pos]
	if !ev.isTombstone() {
		panic(fmt.Sprintf("extend_to: marker points at %s", *ev))
	}
	ev.forwardParent = cm.startPos - m.pos
	return cm
}
