package syntax

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrMalformedLiteral is returned by the decoders for text that is not a
// well-formed literal of the requested kind.
var ErrMalformedLiteral = errors.New("malformed literal")

func malformed(kind string, text []byte) error {
	return fmt.Errorf("%w: %s %q", ErrMalformedLiteral, kind, text)
}

// ParseInt decodes an integer token.
func ParseInt(text []byte) (int64, error) {
	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		return 0, malformed("integer", text)
	}
	return v, nil
}

// ParseReal decodes a real or integer token.
func ParseReal(text []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return 0, malformed("real", text)
	}
	return v, nil
}

// UnescapeLiteralString decodes a parenthesised string token (7.3.4.2).
// Unknown escapes drop the backslash, a backslash before an end-of-line
// joins the lines, and bare CR or CRLF read as LF.
func UnescapeLiteralString(text []byte) ([]byte, error) {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return nil, malformed("string", text)
	}
	in := text[1 : len(text)-1]
	out := make([]byte, 0, len(in))

	for i := 0; i < len(in); i++ {
		b := in[i]
		switch {
		case b == '\r':
			if i+1 < len(in) && in[i+1] == '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		case b != '\\':
			out = append(out, b)
			continue
		case i+1 == len(in):
			continue
		}

		i++
		switch e := in[i]; e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '(', ')', '\\':
			out = append(out, e)
		case '\r':
			if i+1 < len(in) && in[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if e < '0' || e > '7' {
				out = append(out, e)
				continue
			}
			v := int(e - '0')
			for n := 1; n < 3 && i+1 < len(in) && in[i+1] >= '0' && in[i+1] <= '7'; n++ {
				i++
				v = v*8 + int(in[i]-'0')
			}
			out = append(out, byte(v))
		}
	}
	return out, nil
}

// DecodeHexString decodes a `<...>` token (7.3.4.3). Whitespace is
// ignored and a missing final digit is taken as 0.
func DecodeHexString(text []byte) ([]byte, error) {
	if len(text) < 2 || text[0] != '<' || text[len(text)-1] != '>' {
		return nil, malformed("hexadecimal string", text)
	}
	out := make([]byte, 0, len(text)/2)
	var hi byte
	odd := false
	for _, b := range text[1 : len(text)-1] {
		var v byte
		switch {
		case b >= '0' && b <= '9':
			v = b - '0'
		case b >= 'a' && b <= 'f':
			v = b - 'a' + 10
		case b >= 'A' && b <= 'F':
			v = b - 'A' + 10
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0:
			continue
		default:
			return nil, malformed("hexadecimal string", text)
		}
		if odd {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		odd = !odd
	}
	if odd {
		out = append(out, hi<<4)
	}
	return out, nil
}

// DecodeName resolves `#xx` escapes in a name token and drops the
// leading slash (7.3.5).
func DecodeName(text []byte) (string, error) {
	if len(text) == 0 || text[0] != '/' {
		return "", malformed("name", text)
	}
	in := text[1:]
	if bytes.IndexByte(in, '#') < 0 {
		return string(in), nil
	}
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] != '#' {
			out = append(out, in[i])
			continue
		}
		if i+2 >= len(in) {
			return "", malformed("name", text)
		}
		v, err := strconv.ParseUint(string(in[i+1:i+3]), 16, 8)
		if err != nil {
			return "", malformed("name", text)
		}
		out = append(out, byte(v))
		i += 2
	}
	return string(out), nil
}

// DecodeTextString interprets the bytes of a string object as a text
// string (7.9.2.2): UTF-16BE with a byte order mark, UTF-8 with a byte
// order mark, or PDFDocEncoding otherwise. PDFDocEncoding is read as
// Latin-1, which agrees with it outside a few control and symbol codes.
func DecodeTextString(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil {
			return string(out)
		}
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		if rest := raw[3:]; utf8.Valid(rest) {
			return string(rest)
		}
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
