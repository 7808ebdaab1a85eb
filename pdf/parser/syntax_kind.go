package parser

import "github.com/dhamidi/pdfc/pdf/edition"

// SyntaxKind is the closed set of token and node kinds. The order is
// significant: TokenSet indexes bits by the numeric value.
type SyntaxKind uint16

const (
	// KindTombstone marks an abandoned or not yet completed Start event.
	KindTombstone SyntaxKind = iota
	KindEOF

	// Punctuation
	KindLBrack
	KindRBrack
	KindLDict
	KindRDict

	// Keywords
	KindRKw
	KindEndobjKw
	KindEndstreamKw
	KindFKw
	KindFalseKw
	KindNKw
	KindNullKw
	KindObjKw
	KindStartxrefKw
	KindStreamKw
	KindTrailerKw
	KindTrueKw
	KindXrefKw

	// Literals
	KindHexString
	KindIntNumber
	KindLiteralString
	KindName
	KindRealNumber

	// Other tokens
	KindComment
	KindError
	KindNewline
	KindRawStream
	KindWhitespace

	// Nodes
	KindArrayExpr
	KindDictionaryExpr
	KindIndirectObjectExpr
	KindIndirectObjectID
	KindIndirectReferenceExpr
	KindLiteral
	KindPdfDocument
	KindStreamExpr
	KindTrailer
	KindStartXRef
	KindXRefTable
	KindXRefSection
	KindXRefSubsection
	KindXRefEntry
	KindXRefEntryType

	kindLast
)

var syntaxKindNames = map[SyntaxKind]string{
	KindTombstone:             "Tombstone",
	KindEOF:                   "EOF",
	KindLBrack:                "LBrack",
	KindRBrack:                "RBrack",
	KindLDict:                 "LDict",
	KindRDict:                 "RDict",
	KindRKw:                   "RKw",
	KindEndobjKw:              "EndobjKw",
	KindEndstreamKw:           "EndstreamKw",
	KindFKw:                   "FKw",
	KindFalseKw:               "FalseKw",
	KindNKw:                   "NKw",
	KindNullKw:                "NullKw",
	KindObjKw:                 "ObjKw",
	KindStartxrefKw:           "StartxrefKw",
	KindStreamKw:              "StreamKw",
	KindTrailerKw:             "TrailerKw",
	KindTrueKw:                "TrueKw",
	KindXrefKw:                "XrefKw",
	KindHexString:             "HexString",
	KindIntNumber:             "IntNumber",
	KindLiteralString:         "LiteralString",
	KindName:                  "Name",
	KindRealNumber:            "RealNumber",
	KindComment:               "Comment",
	KindError:                 "Error",
	KindNewline:               "Newline",
	KindRawStream:             "RawStream",
	KindWhitespace:            "Whitespace",
	KindArrayExpr:             "ArrayExpr",
	KindDictionaryExpr:        "DictionaryExpr",
	KindIndirectObjectExpr:    "IndirectObjectExpr",
	KindIndirectObjectID:      "IndirectObjectId",
	KindIndirectReferenceExpr: "IndirectReferenceExpr",
	KindLiteral:               "Literal",
	KindPdfDocument:           "PdfDocument",
	KindStreamExpr:            "StreamExpr",
	KindTrailer:               "Trailer",
	KindStartXRef:             "StartXRef",
	KindXRefTable:             "XRefTable",
	KindXRefSection:           "XRefSection",
	KindXRefSubsection:        "XRefSubsection",
	KindXRefEntry:             "XRefEntry",
	KindXRefEntryType:         "XRefEntryType",
}

func (k SyntaxKind) String() string {
	if name, ok := syntaxKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// fixedText holds the spelling of every punctuation and keyword kind.
var fixedText = map[SyntaxKind]string{
	KindLBrack:      "[",
	KindRBrack:      "]",
	KindLDict:       "<<",
	KindRDict:       ">>",
	KindRKw:         "R",
	KindEndobjKw:    "endobj",
	KindEndstreamKw: "endstream",
	KindFKw:         "f",
	KindFalseKw:     "false",
	KindNKw:         "n",
	KindNullKw:      "null",
	KindObjKw:       "obj",
	KindStartxrefKw: "startxref",
	KindStreamKw:    "stream",
	KindTrailerKw:   "trailer",
	KindTrueKw:      "true",
	KindXrefKw:      "xref",
}

// Text returns the fixed spelling of a punctuation or keyword kind, or ""
// for kinds whose text varies.
func (k SyntaxKind) Text() string {
	return fixedText[k]
}

// describe is used in diagnostics: `>>` for fixed tokens, the kind name
// otherwise.
func (k SyntaxKind) describe() string {
	if text := k.Text(); text != "" {
		return "`" + text + "`"
	}
	return k.String()
}

type keyword struct {
	kind  SyntaxKind
	since edition.Edition
}

// keywords is keyed by exact, case-sensitive spelling.
var keywords = map[string]keyword{
	"R":         {KindRKw, edition.Pdf10},
	"endobj":    {KindEndobjKw, edition.Pdf10},
	"endstream": {KindEndstreamKw, edition.Pdf10},
	"f":         {KindFKw, edition.Pdf10},
	"false":     {KindFalseKw, edition.Pdf10},
	"n":         {KindNKw, edition.Pdf10},
	"null":      {KindNullKw, edition.Pdf10},
	"obj":       {KindObjKw, edition.Pdf10},
	"startxref": {KindStartxrefKw, edition.Pdf10},
	"stream":    {KindStreamKw, edition.Pdf10},
	"trailer":   {KindTrailerKw, edition.Pdf10},
	"true":      {KindTrueKw, edition.Pdf10},
	"xref":      {KindXrefKw, edition.Pdf10},
}

// keywordSince is the reverse of keywords, built once.
var keywordSince = func() map[SyntaxKind]edition.Edition {
	m := make(map[SyntaxKind]edition.Edition, len(keywords))
	for _, kw := range keywords {
		m[kw.kind] = kw.since
	}
	return m
}()

// FromKeyword maps an identifier to its keyword kind for the given edition.
func FromKeyword(ident string, ed edition.Edition) (SyntaxKind, bool) {
	kw, ok := keywords[ident]
	if !ok || !ed.AtLeast(kw.since) {
		return KindError, false
	}
	return kw.kind, true
}

// IsKeyword reports whether k is a keyword reserved in edition ed.
func (k SyntaxKind) IsKeyword(ed edition.Edition) bool {
	since, ok := keywordSince[k]
	return ok && ed.AtLeast(since)
}

func (k SyntaxKind) IsTrivia() bool {
	return k == KindWhitespace || k == KindNewline || k == KindComment
}

func (k SyntaxKind) IsPunct() bool {
	return k >= KindLBrack && k <= KindRDict
}

func (k SyntaxKind) IsLiteral() bool {
	return k >= KindHexString && k <= KindRealNumber
}

// IsNode reports whether k is an interior node kind. KindError is both a
// token kind and a node kind and is reported as a node.
func (k SyntaxKind) IsNode() bool {
	return k == KindError || (k >= KindArrayExpr && k < kindLast)
}
