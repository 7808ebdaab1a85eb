package parser

// TokenSet is a bitset of SyntaxKinds used for first sets and recovery
// sets. It is a value type: Union returns a new set.
type TokenSet [2]uint64

var EmptyTokenSet TokenSet

func NewTokenSet(kinds ...SyntaxKind) TokenSet {
	var ts TokenSet
	for _, k := range kinds {
		ts[k/64] |= 1 << (k % 64)
	}
	return ts
}

func (ts TokenSet) Union(other TokenSet) TokenSet {
	return TokenSet{ts[0] | other[0], ts[1] | other[1]}
}

func (ts TokenSet) Contains(kind SyntaxKind) bool {
	if int(kind)/64 >= len(ts) {
		return false
	}
	return ts[kind/64]&(1<<(kind%64)) != 0
}
