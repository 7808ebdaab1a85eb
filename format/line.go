package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

// LineEncoder writes one `file:line:col: message` line per error, with
// one-based lines and columns.
type LineEncoder struct {
	encoder
}

func NewLineEncoder(w io.Writer, file string) *LineEncoder {
	return &LineEncoder{encoder{w: w, text: func(p syntax.Parse) ([]byte, error) {
		return marshalLines(p, file), nil
	}}}
}

func marshalLines(p syntax.Parse, file string) []byte {
	if p.Ok() {
		return nil
	}
	var sb strings.Builder
	idx := syntax.NewLineIndex(p.Green().Text())
	for _, e := range p.Errors() {
		line, col := idx.LineCol(e.Range.Start)
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", file, line+1, col+1, e.Msg)
	}
	return []byte(sb.String())
}
