package format

import (
	"io"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

// TreeEncoder writes the indented debug dump followed by the errors.
type TreeEncoder struct {
	encoder
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{encoder{w: w, text: func(p syntax.Parse) ([]byte, error) {
		return []byte(p.DebugDump()), nil
	}}}
}
