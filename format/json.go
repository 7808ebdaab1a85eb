package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

// JSONEncoder writes the tree and the errors as indented JSON.
type JSONEncoder struct {
	encoder
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{encoder{w: w, text: marshalJSON}}
}

func marshalJSON(p syntax.Parse) ([]byte, error) {
	out, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
