package syntax

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// LineIndex maps byte offsets to zero-based line and column numbers. A
// line ends at LF, CR or CRLF. Columns count bytes.
type LineIndex struct {
	text   []byte
	starts []int
	size   int
}

func NewLineIndex(text []byte) *LineIndex {
	idx := &LineIndex{text: text, starts: []int{0}, size: len(text)}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			idx.starts = append(idx.starts, i+1)
		case '\n':
			idx.starts = append(idx.starts, i+1)
		}
	}
	return idx
}

func (idx *LineIndex) Lines() int {
	return len(idx.starts)
}

// LineCol clamps offset into the text.
func (idx *LineIndex) LineCol(offset int) (line, col int) {
	offset = max(0, min(offset, idx.size))
	line = sort.Search(len(idx.starts), func(i int) bool { return idx.starts[i] > offset }) - 1
	return line, offset - idx.starts[line]
}

// Offset is the inverse of LineCol. Positions past the end of a line
// clamp to the end of the text on that line.
func (idx *LineIndex) Offset(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(idx.starts) {
		return idx.size
	}
	return max(idx.starts[line], min(idx.starts[line]+col, idx.lineEnd(line)))
}

// LineColUTF16 is LineCol with the column in UTF-16 code units. Bytes that
// are not valid UTF-8 count as one unit each.
func (idx *LineIndex) LineColUTF16(offset int) (line, col int) {
	line, col = idx.LineCol(offset)
	start := idx.starts[line]
	return line, utf16Len(idx.text[start : start+col])
}

// OffsetUTF16 is the inverse of LineColUTF16. A column inside a surrogate
// pair moves to the end of its character.
func (idx *LineIndex) OffsetUTF16(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= len(idx.starts) {
		return idx.size
	}
	off, end := idx.starts[line], idx.lineEnd(line)
	for units := 0; units < col && off < end; {
		r, size := utf8.DecodeRune(idx.text[off:end])
		units += utf16.RuneLen(r)
		off += size
	}
	return off
}

func (idx *LineIndex) lineEnd(line int) int {
	if line+1 < len(idx.starts) {
		return idx.starts[line+1]
	}
	return idx.size
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		n += utf16.RuneLen(r)
		b = b[size:]
	}
	return n
}
