package parser

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/pdfc/pdf/edition"
)

// ToInput drops trivia and keeps everything the grammar needs.
func (l *LexedStr) ToInput(_ edition.Edition) *Input {
	in := &Input{}
	for i := 0; i < l.Len(); i++ {
		kind := l.Kind(i)
		switch {
		case kind.IsTrivia():
			continue
		case kind == KindIntNumber:
			v, err := strconv.ParseInt(string(l.Text(i)), 10, 64)
			if err != nil {
				v = -1
			}
			in.PushInt(v)
		default:
			in.Push(kind)
		}
	}
	return in
}

type StrStepKind uint8

const (
	StrStepToken StrStepKind = iota
	StrStepEnter
	StrStepExit
	StrStepError
)

// StrStep is a step of the final tree-building stream. Token steps carry
// their text and Error steps the byte offset they apply to.
type StrStep struct {
	Kind       StrStepKind
	SyntaxKind SyntaxKind
	Text       []byte
	Msg        string
	Pos        int
}

// triviaToken is a trivia token as seen by an attachment policy.
type triviaToken struct {
	kind SyntaxKind
	text []byte
}

// triviaPolicy decides how many trivia tokens around a node belong to it.
// leading sees the trivia before the node nearest first, trailing the
// trivia after it in source order. A nil func attaches nothing.
type triviaPolicy struct {
	leading  func(trivia []triviaToken) int
	trailing func(trivia []triviaToken) int
}

var triviaPolicies = map[SyntaxKind]triviaPolicy{
	KindXRefEntry: {trailing: attachLineEnd},
}

// attachLineEnd keeps the end-of-line of fixed-width records inside them.
func attachLineEnd(trivia []triviaToken) int {
	for i, t := range trivia {
		switch t.kind {
		case KindWhitespace:
			continue
		case KindNewline:
			return i + 1
		default:
			return 0
		}
	}
	return 0
}

type builderState uint8

const (
	statePendingEnter builderState = iota
	stateNormal
	statePendingExit
)

type triviaBuilder struct {
	lexed *LexedStr
	pos   int
	state builderState
	open  []SyntaxKind
	sink  func(StrStep)
}

// IntersperseTrivia replays out against the full token stream, putting
// back the trivia the grammar never saw. Trivia between siblings goes to
// their common parent unless a policy for the node kind says otherwise;
// trivia at the very start and end of the input goes to the root.
func (l *LexedStr) IntersperseTrivia(out *Output, sink func(StrStep)) {
	b := &triviaBuilder{lexed: l, sink: sink}

	for step := range out.Steps() {
		switch step.Kind {
		case StepToken:
			b.token(step.SyntaxKind, step.NInputTokens)
		case StepEnter:
			b.enter(step.SyntaxKind)
		case StepExit:
			b.exit()
		case StepError:
			b.sink(StrStep{Kind: StrStepError, Msg: step.Msg, Pos: l.TextStart(b.pos)})
		}
	}

	if b.state != statePendingExit {
		panic("parser output does not end with the root's exit")
	}
	b.eatTrivia(b.countTrivia())
	b.exitNode()

	if b.pos != l.Len() {
		panic(fmt.Sprintf("tree covers %d of %d bytes", l.TextStart(b.pos), len(l.Source())))
	}
	if len(b.open) != 0 {
		panic(fmt.Sprintf("%d nodes left open", len(b.open)))
	}
}

func (b *triviaBuilder) token(kind SyntaxKind, n uint8) {
	switch b.state {
	case statePendingEnter:
		panic("token before the root node")
	case statePendingExit:
		b.flushExit()
	}
	b.state = stateNormal
	b.eatTrivia(b.countTrivia())
	b.doToken(kind, int(n))
}

func (b *triviaBuilder) enter(kind SyntaxKind) {
	switch b.state {
	case statePendingEnter:
		b.state = stateNormal
		b.enterNode(kind)
		return
	case statePendingExit:
		b.flushExit()
	}
	b.state = stateNormal

	n := b.countTrivia()
	attached := 0
	if policy := triviaPolicies[kind]; policy.leading != nil {
		trivia := b.trivia(n)
		for i, j := 0, len(trivia)-1; i < j; i, j = i+1, j-1 {
			trivia[i], trivia[j] = trivia[j], trivia[i]
		}
		attached = policy.leading(trivia)
	}
	b.eatTrivia(n - attached)
	b.enterNode(kind)
	b.eatTrivia(attached)
}

func (b *triviaBuilder) exit() {
	switch b.state {
	case statePendingEnter:
		panic("exit before the root node")
	case statePendingExit:
		b.flushExit()
	}
	b.state = statePendingExit
}

// flushExit closes the node whose exit was deferred, first giving it any
// trailing trivia its policy claims.
func (b *triviaBuilder) flushExit() {
	kind := b.open[len(b.open)-1]
	if policy := triviaPolicies[kind]; policy.trailing != nil {
		b.eatTrivia(policy.trailing(b.trivia(b.countTrivia())))
	}
	b.exitNode()
}

func (b *triviaBuilder) countTrivia() int {
	n := 0
	for i := b.pos; i < b.lexed.Len() && b.lexed.Kind(i).IsTrivia(); i++ {
		n++
	}
	return n
}

func (b *triviaBuilder) trivia(n int) []triviaToken {
	res := make([]triviaToken, n)
	for i := range res {
		res[i] = triviaToken{kind: b.lexed.Kind(b.pos + i), text: b.lexed.Text(b.pos + i)}
	}
	return res
}

func (b *triviaBuilder) eatTrivia(n int) {
	for i := 0; i < n; i++ {
		kind := b.lexed.Kind(b.pos)
		if !kind.IsTrivia() {
			panic(fmt.Sprintf("expected trivia at token %d, found %s", b.pos, kind))
		}
		b.doToken(kind, 1)
	}
}

func (b *triviaBuilder) doToken(kind SyntaxKind, n int) {
	if n == 0 {
		return
	}
	if b.pos+n > b.lexed.Len() {
		panic(fmt.Sprintf("parser consumed %d tokens past the end of input", b.pos+n-b.lexed.Len()))
	}
	text := b.lexed.RangeText(b.pos, b.pos+n)
	b.pos += n
	b.sink(StrStep{Kind: StrStepToken, SyntaxKind: kind, Text: text})
}

func (b *triviaBuilder) enterNode(kind SyntaxKind) {
	b.open = append(b.open, kind)
	b.sink(StrStep{Kind: StrStepEnter, SyntaxKind: kind})
}

func (b *triviaBuilder) exitNode() {
	if len(b.open) == 0 {
		panic("unbalanced exit")
	}
	b.open = b.open[:len(b.open)-1]
	b.sink(StrStep{Kind: StrStepExit})
}
