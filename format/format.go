// Package format renders parse results for the command line.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/pdfc/pdf/syntax"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(p syntax.Parse) error
}

// Names lists the formats accepted by New.
var Names = []string{"tree", "json", "line"}

// New returns the encoder called name writing to w. The file name is
// used by formats that print positions.
func New(name string, w io.Writer, file string) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w, file), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

type encoder struct {
	w     io.Writer
	parse syntax.Parse
	text  func(p syntax.Parse) ([]byte, error)
}

func (e *encoder) Encode(p syntax.Parse) error {
	e.parse = p
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *encoder) MarshalText() ([]byte, error) {
	return e.text(e.parse)
}
