// Package lexer splits raw PDF bytes into tokens with no knowledge of the
// grammar. It never fails: bytes it cannot classify become TokenUnknown.
//
// References are to ISO 32000-2:2020, section 7.
package lexer

import "iter"

// AdvanceToken consumes exactly one token from the current position. At the
// end of input it returns a zero-length TokenEOF.
func (c *Cursor) AdvanceToken() Token {
	if c.inStream {
		if tok, ok := c.streamToken(); ok {
			return tok
		}
	}

	first, ok := c.next()
	if !ok {
		return NewToken(TokenEOF, 0)
	}

	tok := c.token(first)
	tok.Len = c.lenWithinToken()
	c.resetTokenStart()
	return tok
}

func (c *Cursor) token(first byte) Token {
	switch {
	// 7.2.3: EOL markers are significant in a few places, so they are not
	// folded into whitespace.
	case isEOL(first):
		c.eatEOL(first)
		return Token{Kind: TokenEOL}

	case isWhitespace(first):
		c.eatWhile(func(b byte) bool { return !isEOL(b) && isWhitespace(b) })
		return Token{Kind: TokenWhitespace}

	// 7.3.3
	case first == '+' || first == '-' || first == '.' || isDigit(first):
		return Token{Kind: TokenLiteral, Literal: c.number(first)}

	case isAlpha(first):
		c.eatWhile(isAlphanumeric)
		if string(c.input[c.tokenStart:c.pos]) == "stream" {
			c.inStream = true
			c.sawStreamEOL = false
		}
		return Token{Kind: TokenIdent}

	// 7.3.5
	case first == '/':
		c.eatWhile(func(b byte) bool { return !isWhitespace(b) && !isDelimiter(b) })
		return Token{Kind: TokenLiteral, Literal: LiteralName}

	// 7.3.4.2
	case first == '(':
		if c.eatLiteralString() {
			return Token{Kind: TokenLiteral, Literal: LiteralString}
		}
		return Token{Kind: TokenUnknown}

	// 7.3.4.3
	case first == '<' && c.PeekFirst() != '<':
		c.eatWhile(func(b byte) bool { return isHexDigit(b) || isWhitespace(b) })
		if c.PeekFirst() == '>' {
			c.next()
			return Token{Kind: TokenLiteral, Literal: LiteralHexString}
		}
		return Token{Kind: TokenUnknown}

	// 7.2.4
	case first == '%':
		c.eatWhile(func(b byte) bool { return !isEOL(b) })
		return Token{Kind: TokenComment}

	// 7.3.6
	case first == '[':
		return Token{Kind: TokenOpenBracket}
	case first == ']':
		return Token{Kind: TokenCloseBracket}

	// 7.3.7
	case first == '<':
		c.next()
		return Token{Kind: TokenOpenDict}
	case first == '>' && c.PeekFirst() == '>':
		c.next()
		return Token{Kind: TokenCloseDict}
	}

	return Token{Kind: TokenUnknown}
}

// streamToken produces the tokens that follow the stream keyword (7.3.8):
// one optional EOL separator, then everything up to endstream as a single
// opaque token. The body is binary and is never tokenized as text.
func (c *Cursor) streamToken() (Token, bool) {
	if c.IsEOF() {
		c.inStream = false
		return Token{}, false
	}

	if first := c.PeekFirst(); isEOL(first) && !c.sawStreamEOL {
		c.sawStreamEOL = true
		c.next()
		c.eatEOL(first)
		return c.finish(TokenEOL), true
	}

	c.inStream = false
	if c.IsWord("endstream") {
		return Token{}, false
	}
	c.eatUntilWord("endstream")
	return c.finish(TokenRawStream), true
}

func (c *Cursor) finish(kind TokenKind) Token {
	tok := NewToken(kind, c.lenWithinToken())
	c.resetTokenStart()
	return tok
}

func (c *Cursor) number(first byte) LiteralKind {
	next := c.PeekFirst()

	// A sign that is not followed by a digit or a dot is still reported as
	// a (malformed) integer.
	if (first == '+' || first == '-') && !(isDigit(next) || next == '.') {
		return LiteralInt
	}

	c.eatDecimalDigits()

	if first == '.' {
		return LiteralReal
	}

	if c.PeekFirst() == '.' {
		c.next()
		c.eatDecimalDigits()
		return LiteralReal
	}
	return LiteralInt
}

func (c *Cursor) eatDecimalDigits() bool {
	hasDigits := false
	for !c.IsEOF() {
		switch b := c.PeekFirst(); {
		case isDigit(b):
			hasDigits = true
			c.next()
		case b == '+' || b == '-':
			c.next()
		default:
			return hasDigits
		}
	}
	return hasDigits
}

func (c *Cursor) eatEOL(first byte) {
	if first == '\r' && c.PeekFirst() == '\n' {
		c.next()
	}
}

// eatLiteralString consumes a parenthesised string after its opening
// parenthesis. Nested parentheses must balance; a backslash protects the
// byte after it. It reports false when the input ends first.
func (c *Cursor) eatLiteralString() bool {
	depth := 1
	for {
		b, ok := c.next()
		if !ok {
			return false
		}
		switch b {
		case '\\':
			c.next()
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}

// Tokenize yields the tokens of input, stopping before TokenEOF.
func Tokenize(input []byte) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		c := NewCursor(input)
		for {
			tok := c.AdvanceToken()
			if tok.Kind == TokenEOF {
				return
			}
			if !yield(tok) {
				return
			}
		}
	}
}

func isEOL(b byte) bool {
	return b == '\n' || b == '\r'
}

// isWhitespace follows Table 1 of 7.2.3.
func isWhitespace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\x0C', '\r', ' ':
		return true
	}
	return false
}

// isDelimiter follows Table 2 of 7.2.3.
func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphanumeric(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
