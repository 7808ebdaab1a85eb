package parser

import (
	"bytes"
	_ "embed"

	"golang.org/x/exp/ebnf"
)

// GrammarText is the EBNF description of the language accepted by
// EntryPdfDocument. Node kinds appear as productions of the same name;
// trivia is implicit between the tokens of non-lexical productions.
//
//go:embed pdf.ebnf
var GrammarText []byte

// GrammarStart is the start production of GrammarText.
const GrammarStart = "PdfDocument"

// Grammar parses GrammarText and verifies it from GrammarStart.
func Grammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("pdf.ebnf", bytes.NewReader(GrammarText))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, err
	}
	return g, nil
}
