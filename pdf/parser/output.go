package parser

import (
	"fmt"
	"iter"
)

type StepKind uint8

const (
	StepEnter StepKind = iota
	StepExit
	StepToken
	StepError
)

var stepKindNames = map[StepKind]string{
	StepEnter: "Enter",
	StepExit:  "Exit",
	StepToken: "Token",
	StepError: "Error",
}

func (k StepKind) String() string {
	if name, ok := stepKindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// Step is one entry of the parser output. Depth is the nesting level the
// step happens at: an Enter of the root has depth 1, tokens directly
// inside it depth 1, and its Exit depth 1.
type Step struct {
	Kind         StepKind
	SyntaxKind   SyntaxKind
	NInputTokens uint8
	Msg          string
	Depth        int
}

func (s Step) String() string {
	switch s.Kind {
	case StepEnter:
		return fmt.Sprintf("%d Enter %s", s.Depth, s.SyntaxKind)
	case StepExit:
		return fmt.Sprintf("%d Exit", s.Depth)
	case StepToken:
		return fmt.Sprintf("%d Token %s %d", s.Depth, s.SyntaxKind, s.NInputTokens)
	case StepError:
		return fmt.Sprintf("%d Error %q", s.Depth, s.Msg)
	}
	return "Invalid"
}

// Output is the flat, balanced result of a grammar run with forward
// parents already resolved into nesting order.
type Output struct {
	steps []Step
	depth int
}

func (o *Output) Len() int {
	return len(o.steps)
}

func (o *Output) At(i int) Step {
	return o.steps[i]
}

func (o *Output) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for _, s := range o.steps {
			if !yield(s) {
				return
			}
		}
	}
}

// Errors yields the messages of all Error steps.
func (o *Output) Errors() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, s := range o.steps {
			if s.Kind == StepError && !yield(s.Msg) {
				return
			}
		}
	}
}

func (o *Output) enter(kind SyntaxKind) {
	o.depth++
	o.steps = append(o.steps, Step{Kind: StepEnter, SyntaxKind: kind, Depth: o.depth})
}

func (o *Output) exit() {
	if o.depth == 0 {
		panic("unbalanced parser output: exit without a matching enter")
	}
	o.steps = append(o.steps, Step{Kind: StepExit, Depth: o.depth})
	o.depth--
}

func (o *Output) token(kind SyntaxKind, n uint8) {
	o.steps = append(o.steps, Step{Kind: StepToken, SyntaxKind: kind, NInputTokens: n, Depth: o.depth})
}

func (o *Output) error(msg string) {
	o.steps = append(o.steps, Step{Kind: StepError, Msg: msg, Depth: o.depth})
}
