package lexer

import "bytes"

// eofByte is returned by the peek helpers past the end of input.
const eofByte byte = 0

// Cursor walks a byte slice one token at a time. It never looks at more
// than the bytes of the token it is producing plus three bytes of lookahead.
type Cursor struct {
	input      []byte
	pos        int
	tokenStart int

	// inStream is set after the stream keyword: the next token is the
	// optional end-of-line separator and then the opaque stream body.
	inStream     bool
	sawStreamEOL bool
}

func NewCursor(input []byte) *Cursor {
	return &Cursor{input: input}
}

// Pos is the byte offset of the next unread byte.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) IsEOF() bool {
	return c.pos >= len(c.input)
}

func (c *Cursor) PeekFirst() byte {
	return c.peekN(0)
}

func (c *Cursor) PeekSecond() byte {
	return c.peekN(1)
}

func (c *Cursor) PeekThird() byte {
	return c.peekN(2)
}

func (c *Cursor) peekN(n int) byte {
	if c.pos+n >= len(c.input) {
		return eofByte
	}
	return c.input[c.pos+n]
}

// IsWord reports whether the unread input starts with word, without
// consuming anything.
func (c *Cursor) IsWord(word string) bool {
	return bytes.HasPrefix(c.input[c.pos:], []byte(word))
}

func (c *Cursor) next() (byte, bool) {
	if c.pos >= len(c.input) {
		return eofByte, false
	}
	b := c.input[c.pos]
	c.pos++
	return b, true
}

func (c *Cursor) eatWhile(pred func(byte) bool) {
	for !c.IsEOF() && pred(c.PeekFirst()) {
		c.pos++
	}
}

// eatUntilWord consumes bytes up to, but not including, the first
// occurrence of word, or up to the end of input.
func (c *Cursor) eatUntilWord(word string) {
	idx := bytes.Index(c.input[c.pos:], []byte(word))
	if idx < 0 {
		c.pos = len(c.input)
		return
	}
	c.pos += idx
}

func (c *Cursor) lenWithinToken() uint32 {
	return uint32(c.pos - c.tokenStart)
}

func (c *Cursor) resetTokenStart() {
	c.tokenStart = c.pos
}
