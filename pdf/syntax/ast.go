package syntax

import "github.com/dhamidi/pdfc/pdf/parser"

// Typed accessors over the untyped tree. They return nil when the shape
// they look for is missing, which happens in erroneous input.

// LiteralToken returns the value token of a Literal node.
func (n *Node) LiteralToken() *Token {
	if n.Kind() != parser.KindLiteral {
		return nil
	}
	for t := range n.Tokens() {
		if !t.Kind().IsTrivia() {
			return t
		}
	}
	return nil
}

// ObjectID returns the object and generation number tokens of an
// indirect object, its IndirectObjectId, or an indirect reference.
func (n *Node) ObjectID() (num, gen *Token) {
	holder := n
	if n.Kind() == parser.KindIndirectObjectExpr {
		holder = n.FirstChild(parser.KindIndirectObjectID)
		if holder == nil {
			return nil, nil
		}
	}
	switch holder.Kind() {
	case parser.KindIndirectObjectID, parser.KindIndirectReferenceExpr:
	default:
		return nil, nil
	}
	var lits []*Token
	for c := range holder.Children() {
		if t := c.LiteralToken(); t != nil {
			lits = append(lits, t)
		}
	}
	if len(lits) != 2 {
		return nil, nil
	}
	return lits[0], lits[1]
}

// Body returns the object of an indirect object: the first node after its
// id. For a stream this is the stream dictionary.
func (n *Node) Body() *Node {
	if n.Kind() != parser.KindIndirectObjectExpr {
		return nil
	}
	for c := range n.Children() {
		switch c.Kind() {
		case parser.KindIndirectObjectID, parser.KindError:
			continue
		}
		return c
	}
	return nil
}

// Stream returns the StreamExpr of an indirect object, if it has one.
func (n *Node) Stream() *Node {
	if n.Kind() != parser.KindIndirectObjectExpr {
		return nil
	}
	return n.FirstChild(parser.KindStreamExpr)
}

// DictEntry is one key/value pair of a dictionary. Value is nil for a
// trailing key without a value.
type DictEntry struct {
	Key   *Node
	Value *Node
}

// DictEntries pairs up the elements of a DictionaryExpr in order.
func (n *Node) DictEntries() []DictEntry {
	if n.Kind() != parser.KindDictionaryExpr {
		return nil
	}
	var entries []DictEntry
	for c := range n.Children() {
		if len(entries) > 0 && entries[len(entries)-1].Value == nil {
			entries[len(entries)-1].Value = c
			continue
		}
		entries = append(entries, DictEntry{Key: c})
	}
	return entries
}

// KeyName returns the decoded key of an entry, or "" when the key is not
// a name.
func (e DictEntry) KeyName() string {
	t := e.Key.LiteralToken()
	if t == nil || t.Kind() != parser.KindName {
		return ""
	}
	name, err := DecodeName(t.Text())
	if err != nil {
		return ""
	}
	return name
}

// Lookup returns the value stored under key in a DictionaryExpr.
func (n *Node) Lookup(key string) *Node {
	for _, e := range n.DictEntries() {
		if e.Value != nil && e.KeyName() == key {
			return e.Value
		}
	}
	return nil
}
