package parser

// Input is what the grammar sees: trivia-free token kinds, struct of arrays,
// no text. Integer tokens additionally carry their value so that counted
// constructs (cross-reference subsections) can be parsed without text.
type Input struct {
	kind           []SyntaxKind
	contextualKind []SyntaxKind
	intValue       []int64
}

func (in *Input) Push(kind SyntaxKind) {
	in.push(kind, KindEOF, 0)
}

// PushInt appends an integer token. Unparsable integers should be pushed
// with a negative value.
func (in *Input) PushInt(value int64) {
	in.push(KindIntNumber, KindEOF, value)
}

func (in *Input) push(kind, contextual SyntaxKind, value int64) {
	in.kind = append(in.kind, kind)
	in.contextualKind = append(in.contextualKind, contextual)
	in.intValue = append(in.intValue, value)
}

func (in *Input) Len() int {
	return len(in.kind)
}

// Reads past the end yield KindEOF rather than failing.
func (in *Input) kindAt(idx int) SyntaxKind {
	if idx < 0 || idx >= len(in.kind) {
		return KindEOF
	}
	return in.kind[idx]
}

func (in *Input) contextualKindAt(idx int) SyntaxKind {
	if idx < 0 || idx >= len(in.contextualKind) {
		return KindEOF
	}
	return in.contextualKind[idx]
}

func (in *Input) intValueAt(idx int) int64 {
	if idx < 0 || idx >= len(in.intValue) {
		return -1
	}
	return in.intValue[idx]
}
