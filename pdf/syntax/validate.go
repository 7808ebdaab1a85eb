package syntax

import (
	"fmt"

	"github.com/dhamidi/pdfc/pdf/parser"
)

// validate checks shape rules the grammar deliberately leaves open.
// It never looks at more than one node at a time.
func validate(root *Node) []SyntaxError {
	var errs []SyntaxError
	report := func(r TextRange, format string, args ...any) {
		errs = append(errs, SyntaxError{Msg: fmt.Sprintf(format, args...), Range: r})
	}

	for n := range root.Descendants() {
		switch n.Kind() {
		case parser.KindDictionaryExpr:
			validateDictionary(n, report)
		case parser.KindIndirectObjectID, parser.KindIndirectReferenceExpr:
			validateObjectID(n, report)
		case parser.KindXRefSubsection:
			validateXRefSubsection(n, report)
		case parser.KindXRefEntry:
			validateXRefEntry(n, report)
		}
	}
	return errs
}

type reportFunc func(r TextRange, format string, args ...any)

func validateDictionary(n *Node, report reportFunc) {
	for _, e := range n.DictEntries() {
		if e.Key.Kind() == parser.KindError {
			continue
		}
		if t := e.Key.LiteralToken(); t == nil || t.Kind() != parser.KindName {
			report(e.Key.TextRange(), "dictionary keys must be names")
		}
		if e.Value == nil {
			report(e.Key.TextRange(), "dictionary is missing a value for the last key")
		}
	}
}

func validateObjectID(n *Node, report reportFunc) {
	num, gen := n.ObjectID()
	if num == nil || gen == nil {
		return
	}
	if v, err := ParseInt(num.Text()); err == nil && v <= 0 {
		report(num.TextRange(), "object number must be positive")
	}
	if v, err := ParseInt(gen.Text()); err == nil && v < 0 {
		report(gen.TextRange(), "generation number must not be negative")
	}
}

func validateXRefSubsection(n *Node, report reportFunc) {
	var header []*Token
	for c := range n.Children() {
		if c.Kind() != parser.KindLiteral {
			break
		}
		header = append(header, c.LiteralToken())
	}
	if len(header) != 2 {
		return
	}
	if v, err := ParseInt(header[0].Text()); err == nil && v < 0 {
		report(header[0].TextRange(), "first object number must not be negative")
	}
	if v, err := ParseInt(header[1].Text()); err == nil && v < 0 {
		report(header[1].TextRange(), "entry count must not be negative")
	}
}

// validateXRefEntry checks the fixed-width fields of 7.5.4.
func validateXRefEntry(n *Node, report reportFunc) {
	var fields []*Token
	for c := range n.Children() {
		if c.Kind() == parser.KindLiteral {
			fields = append(fields, c.LiteralToken())
		}
	}
	if len(fields) != 2 {
		return
	}
	if !isDigits(fields[0].Text(), 10) {
		report(fields[0].TextRange(), "cross-reference offset must be exactly 10 digits")
	}
	if !isDigits(fields[1].Text(), 5) {
		report(fields[1].TextRange(), "cross-reference generation must be exactly 5 digits")
	}
}

func isDigits(text []byte, n int) bool {
	if len(text) != n {
		return false
	}
	for _, b := range text {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}
