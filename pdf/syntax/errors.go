package syntax

import "fmt"

// TextRange is a half-open byte range [Start, End).
type TextRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r TextRange) Len() int {
	return r.End - r.Start
}

func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains reports whether offset lies inside r. An empty range contains
// only its start.
func (r TextRange) Contains(offset int) bool {
	if r.IsEmpty() {
		return offset == r.Start
	}
	return offset >= r.Start && offset < r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// SyntaxError is a problem found in the input. It is part of a parse
// result, not a failure of the parse.
type SyntaxError struct {
	Msg   string    `json:"message"`
	Range TextRange `json:"range"`
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Range, e.Msg)
}
