package parser

import (
	"fmt"

	"github.com/dhamidi/pdfc/pdf/edition"
)

// TopEntryPoint selects the production a parse starts from.
type TopEntryPoint uint8

const (
	EntryPdfDocument TopEntryPoint = iota
	EntryExpr
)

var topEntryPointNames = map[TopEntryPoint]string{
	EntryPdfDocument: "PdfDocument",
	EntryExpr:        "Expr",
}

func (e TopEntryPoint) String() string {
	if name, ok := topEntryPointNames[e]; ok {
		return name
	}
	return "Unknown"
}

// Parse runs the grammar over inp and returns the processed output.
func (e TopEntryPoint) Parse(inp *Input, ed edition.Edition) *Output {
	p := NewParser(inp, ed)
	switch e {
	case EntryPdfDocument:
		pdfDocument(p)
	case EntryExpr:
		topExpr(p)
	default:
		panic(fmt.Sprintf("unknown entry point %d", e))
	}
	return process(p.Finish())
}

var (
	literalFirst = NewTokenSet(
		KindTrueKw, KindFalseKw, KindNullKw,
		KindIntNumber, KindRealNumber,
		KindLiteralString, KindHexString, KindName,
	)

	atomExprFirst = literalFirst.Union(NewTokenSet(KindLBrack, KindLDict))

	// exprRecoverySet stops error recovery inside arrays and dictionaries.
	exprRecoverySet = NewTokenSet(
		KindRDict, KindRBrack, KindEndobjKw,
		KindXrefKw, KindTrailerKw, KindStartxrefKw,
	)
)

func pdfDocument(p *Parser) {
	m := p.Start()
	for !p.At(KindEOF) {
		pdfItem(p)
	}
	m.Complete(p, KindPdfDocument)
}

func topExpr(p *Parser) {
	m := p.Start()
	_, ok := expr(p)
	if ok && p.At(KindEOF) {
		m.Abandon(p)
		return
	}
	if ok {
		p.Error("expected the end of input")
	}
	for !p.At(KindEOF) {
		p.BumpAny()
	}
	m.Complete(p, KindError)
}
