// Package syntax is the entry point of the parsing pipeline. ParseText
// turns bytes into a lossless green tree plus the list of lexical,
// structural and validation errors, and the positioned Node view makes
// that tree navigable.
package syntax

import (
	"slices"

	"github.com/dhamidi/pdfc/pdf/edition"
	"github.com/dhamidi/pdfc/pdf/green"
	"github.com/dhamidi/pdfc/pdf/parser"
)

type options struct {
	edition edition.Edition
	cache   *green.NodeCache
	entry   parser.TopEntryPoint
}

type Option func(*options)

func WithEdition(ed edition.Edition) Option {
	return func(o *options) {
		o.edition = ed
	}
}

// WithCache interns the tree into cache, sharing structure with every
// other tree built from it.
func WithCache(cache *green.NodeCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

// WithEntryPoint parses a single object instead of a whole document.
func WithEntryPoint(entry parser.TopEntryPoint) Option {
	return func(o *options) {
		o.entry = entry
	}
}

// Parse is an immutable parse result. Copies share the tree and the
// error list.
type Parse struct {
	green  *green.Node
	errors []SyntaxError
}

// ParseText never fails: whatever the input, the tree covers it exactly
// and problems are reported through Errors.
func ParseText(text []byte, opts ...Option) Parse {
	o := options{edition: edition.Latest, entry: parser.EntryPdfDocument}
	for _, opt := range opts {
		opt(&o)
	}

	lexed := parser.Lex(o.edition, text)
	out := o.entry.Parse(lexed.ToInput(o.edition), o.edition)
	root, errs := buildTree(lexed, out, o.cache)
	errs = append(errs, validate(NewRoot(root))...)

	return Parse{green: root, errors: errs}
}

func (p Parse) Green() *green.Node {
	return p.green
}

// Tree returns a positioned view of the root, nil for a zero Parse.
func (p Parse) Tree() *Node {
	if p.green == nil {
		return nil
	}
	return NewRoot(p.green)
}

// Errors returns the shared error list. Callers must not modify it.
func (p Parse) Errors() []SyntaxError {
	return p.errors
}

func (p Parse) Ok() bool {
	return len(p.errors) == 0
}

// Equal reports whether two results have equal trees and error lists.
func (p Parse) Equal(other Parse) bool {
	return p.green.Equal(other.green) && slices.Equal(p.errors, other.errors)
}

// buildTree feeds the bridge's steps into a green builder. Structural
// and lexical errors are merged in offset order.
func buildTree(lexed *parser.LexedStr, out *parser.Output, cache *green.NodeCache) (*green.Node, []SyntaxError) {
	b := green.NewBuilder(cache)
	var errs []SyntaxError

	lexed.IntersperseTrivia(out, func(s parser.StrStep) {
		switch s.Kind {
		case parser.StrStepEnter:
			b.StartNode(s.SyntaxKind)
		case parser.StrStepExit:
			b.FinishNode()
		case parser.StrStepToken:
			b.Token(s.SyntaxKind, s.Text)
		case parser.StrStepError:
			errs = append(errs, SyntaxError{Msg: s.Msg, Range: TextRange{Start: s.Pos, End: s.Pos}})
		}
	})

	for idx, msg := range lexed.Errors() {
		start, end := lexed.TextRange(idx)
		errs = append(errs, SyntaxError{Msg: msg, Range: TextRange{Start: start, End: end}})
	}
	slices.SortStableFunc(errs, func(a, b SyntaxError) int {
		return a.Range.Start - b.Range.Start
	})

	return b.Finish(), errs
}
