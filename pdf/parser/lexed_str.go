package parser

import (
	"fmt"
	"iter"
	"sort"

	"github.com/dhamidi/pdfc/pdf/edition"
	"github.com/dhamidi/pdfc/pdf/lexer"
)

// LexedStr is the classified token stream of a whole input, trivia
// included. Token i spans text[start[i]:start[i+1]]; a trailing EOF entry
// records the end offset.
type LexedStr struct {
	text  []byte
	kind  []SyntaxKind
	start []uint32
	errs  []lexError
}

type lexError struct {
	msg   string
	token uint32
}

// Lex classifies every token of text. It never fails; malformed tokens
// carry an error message retrievable with Error.
func Lex(ed edition.Edition, text []byte) *LexedStr {
	conv := newConverter(ed, text)
	for tok := range lexer.Tokenize(text) {
		tokenText := text[conv.offset : conv.offset+int(tok.Len)]
		conv.extendToken(tok, tokenText)
	}
	return conv.finalizeWithEOF()
}

// SingleToken classifies text that must consist of exactly one token.
func SingleToken(ed edition.Edition, text []byte) (kind SyntaxKind, errMsg string, ok bool) {
	if len(text) == 0 {
		return KindEOF, "", false
	}
	c := lexer.NewCursor(text)
	tok := c.AdvanceToken()
	if int(tok.Len) != len(text) {
		return KindEOF, "", false
	}
	conv := newConverter(ed, text)
	conv.extendToken(tok, text)
	res := conv.res
	if len(res.kind) != 1 {
		return KindEOF, "", false
	}
	if len(res.errs) > 0 {
		errMsg = res.errs[0].msg
	}
	return res.kind[0], errMsg, true
}

// Source returns the complete input.
func (l *LexedStr) Source() []byte {
	return l.text
}

// Len is the number of tokens, not counting the EOF sentinel.
func (l *LexedStr) Len() int {
	return len(l.kind) - 1
}

func (l *LexedStr) IsEmpty() bool {
	return l.Len() == 0
}

func (l *LexedStr) Kind(i int) SyntaxKind {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("token index %d out of range [0, %d)", i, l.Len()))
	}
	return l.kind[i]
}

func (l *LexedStr) Text(i int) []byte {
	return l.RangeText(i, i+1)
}

// RangeText returns the text of tokens lo through hi-1.
func (l *LexedStr) RangeText(lo, hi int) []byte {
	if lo < 0 || lo >= hi || hi > l.Len() {
		panic(fmt.Sprintf("token range %d..%d out of range [0, %d]", lo, hi, l.Len()))
	}
	return l.text[l.start[lo]:l.start[hi]]
}

// TextRange returns the byte range [start, end) of token i.
func (l *LexedStr) TextRange(i int) (start, end int) {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("token index %d out of range [0, %d)", i, l.Len()))
	}
	return int(l.start[i]), int(l.start[i+1])
}

// TextStart returns the offset where token i starts; TextStart(Len()) is
// the length of the input.
func (l *LexedStr) TextStart(i int) int {
	if i < 0 || i > l.Len() {
		panic(fmt.Sprintf("token index %d out of range [0, %d]", i, l.Len()))
	}
	return int(l.start[i])
}

func (l *LexedStr) TextLen(i int) int {
	start, end := l.TextRange(i)
	return end - start
}

// Error returns the lexical error attached to token i, if any.
func (l *LexedStr) Error(i int) (string, bool) {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("token index %d out of range [0, %d)", i, l.Len()))
	}
	idx := sort.Search(len(l.errs), func(j int) bool { return l.errs[j].token >= uint32(i) })
	if idx < len(l.errs) && l.errs[idx].token == uint32(i) {
		return l.errs[idx].msg, true
	}
	return "", false
}

// Errors yields (token index, message) pairs in token order.
func (l *LexedStr) Errors() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, e := range l.errs {
			if !yield(int(e.token), e.msg) {
				return
			}
		}
	}
}

func (l *LexedStr) push(kind SyntaxKind, offset int) {
	l.kind = append(l.kind, kind)
	l.start = append(l.start, uint32(offset))
}

// converter maps lexer tokens onto SyntaxKinds and validates literals.
type converter struct {
	res     *LexedStr
	offset  int
	edition edition.Edition
}

func newConverter(ed edition.Edition, text []byte) *converter {
	return &converter{
		res:     &LexedStr{text: text},
		edition: ed,
	}
}

func (c *converter) finalizeWithEOF() *LexedStr {
	c.res.push(KindEOF, c.offset)
	return c.res
}

func (c *converter) push(kind SyntaxKind, length int, errMsg string) {
	token := uint32(len(c.res.kind))
	c.res.push(kind, c.offset)
	c.offset += length
	if errMsg != "" {
		c.res.errs = append(c.res.errs, lexError{msg: errMsg, token: token})
	}
}

func (c *converter) extendToken(tok lexer.Token, text []byte) {
	var kind SyntaxKind
	var errMsg string

	switch tok.Kind {
	case lexer.TokenUnknown:
		kind = KindError
		errMsg = unknownTokenError(text)
	case lexer.TokenEOL:
		kind = KindNewline
	case lexer.TokenWhitespace:
		kind = KindWhitespace
	case lexer.TokenComment:
		kind = KindComment
	case lexer.TokenIdent:
		var ok bool
		kind, ok = FromKeyword(string(text), c.edition)
		if !ok {
			errMsg = fmt.Sprintf("unknown keyword `%s`", text)
		}
	case lexer.TokenLiteral:
		c.extendLiteral(tok.Literal, text)
		return
	case lexer.TokenOpenBracket:
		kind = KindLBrack
	case lexer.TokenCloseBracket:
		kind = KindRBrack
	case lexer.TokenOpenDict:
		kind = KindLDict
	case lexer.TokenCloseDict:
		kind = KindRDict
	case lexer.TokenRawStream:
		kind = KindRawStream
	case lexer.TokenEOF:
		kind = KindEOF
	}

	c.push(kind, len(text), errMsg)
}

func (c *converter) extendLiteral(kind lexer.LiteralKind, text []byte) {
	var syntaxKind SyntaxKind
	var errMsg string

	switch kind {
	case lexer.LiteralInt:
		syntaxKind = KindIntNumber
		errMsg = validateNumber(text)
	case lexer.LiteralReal:
		syntaxKind = KindRealNumber
		errMsg = validateNumber(text)
	case lexer.LiteralName:
		syntaxKind = KindName
		errMsg = validateName(text, c.edition)
	case lexer.LiteralString:
		syntaxKind = KindLiteralString
		errMsg = validateLiteralString(text)
	case lexer.LiteralHexString:
		syntaxKind = KindHexString
	}

	c.push(syntaxKind, len(text), errMsg)
}

func unknownTokenError(text []byte) string {
	switch text[0] {
	case '(':
		return "unterminated literal string"
	case '<':
		return "unterminated hexadecimal string"
	}
	return "unexpected character"
}

// validateNumber accepts [+-]?(d+(.d*)?|.d+).
func validateNumber(text []byte) string {
	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	intDigits := 0
	for i < len(text) && isDigit(text[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(text) && text[i] == '.' {
		i++
		for i < len(text) && isDigit(text[i]) {
			i++
			fracDigits++
		}
	}
	if i != len(text) || intDigits+fracDigits == 0 {
		return "malformed number"
	}
	return ""
}

func validateName(text []byte, ed edition.Edition) string {
	for i := 1; i < len(text); i++ {
		b := text[i]
		if b == '#' {
			if !ed.AtLeast(edition.Pdf12) {
				return "escapes in names require PDF 1.2"
			}
			if i+2 >= len(text) || !isHexDigit(text[i+1]) || !isHexDigit(text[i+2]) {
				return "invalid escape in name"
			}
			i += 2
			continue
		}
		if b < '!' || b > '~' {
			return "invalid character in name"
		}
	}
	return ""
}

func validateLiteralString(text []byte) string {
	inner := text[1 : len(text)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] != '\\' || i+1 >= len(inner) {
			continue
		}
		i++
		switch b := inner[i]; {
		case b == 'n', b == 'r', b == 't', b == 'b', b == 'f', b == '(', b == ')', b == '\\':
		case b >= '0' && b <= '7':
		case b == '\r', b == '\n':
		default:
			return "invalid escape sequence"
		}
	}
	return ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
