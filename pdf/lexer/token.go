package lexer

import "fmt"

// Token is one lexeme: its kind and its length in bytes. It carries no
// position; callers accumulate lengths to recover offsets.
type Token struct {
	Kind    TokenKind
	Literal LiteralKind
	Len     uint32
}

func NewToken(kind TokenKind, length uint32) Token {
	return Token{Kind: kind, Len: length}
}

func NewLiteral(kind LiteralKind, length uint32) Token {
	return Token{Kind: TokenLiteral, Literal: kind, Len: length}
}

func (t Token) String() string {
	if t.Kind == TokenLiteral {
		return fmt.Sprintf("%s(%s) %d", t.Kind, t.Literal, t.Len)
	}
	return fmt.Sprintf("%s %d", t.Kind, t.Len)
}

type TokenKind uint8

const (
	// TokenUnknown is anything the lexer could not classify, including
	// unterminated strings.
	TokenUnknown TokenKind = iota
	TokenEOL
	TokenWhitespace
	TokenComment
	// TokenIdent is a keyword or a plain identifier, e.g. obj, endobj, R.
	TokenIdent
	// TokenLiteral carries its subkind in Token.Literal.
	TokenLiteral
	TokenOpenBracket
	TokenCloseBracket
	TokenOpenDict
	TokenCloseDict
	// TokenRawStream is the opaque body between stream and endstream.
	TokenRawStream
	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenUnknown:      "Unknown",
	TokenEOL:          "EOL",
	TokenWhitespace:   "Whitespace",
	TokenComment:      "Comment",
	TokenIdent:        "Ident",
	TokenLiteral:      "Literal",
	TokenOpenBracket:  "OpenBracket",
	TokenCloseBracket: "CloseBracket",
	TokenOpenDict:     "OpenDict",
	TokenCloseDict:    "CloseDict",
	TokenRawStream:    "RawStream",
	TokenEOF:          "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Invalid"
}

type LiteralKind uint8

const (
	// LiteralInt is 123, +123, -123.
	LiteralInt LiteralKind = iota
	// LiteralReal is 3.14, -3.14, 3., .3.
	LiteralReal
	// LiteralName is /Name.
	LiteralName
	// LiteralString is (text), possibly with nested parentheses.
	LiteralString
	// LiteralHexString is <0123abcdef>.
	LiteralHexString
)

var literalKindNames = map[LiteralKind]string{
	LiteralInt:       "Int",
	LiteralReal:      "Real",
	LiteralName:      "Name",
	LiteralString:    "String",
	LiteralHexString: "HexString",
}

func (k LiteralKind) String() string {
	if name, ok := literalKindNames[k]; ok {
		return name
	}
	return "Invalid"
}
