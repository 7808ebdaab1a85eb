package syntax

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Range    TextRange   `json:"range"`
	Text     *string     `json:"text,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonParse struct {
	Tree   *jsonNode     `json:"tree"`
	Errors []SyntaxError `json:"errors"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Kind:  n.Kind().String(),
		Range: n.TextRange(),
	}
	for c := range n.ChildrenWithTokens() {
		if c.Node != nil {
			jn.Children = append(jn.Children, c.Node.toJSON())
			continue
		}
		text := string(c.Token.Text())
		jn.Children = append(jn.Children, &jsonNode{
			Kind:  c.Token.Kind().String(),
			Range: c.Token.TextRange(),
			Text:  &text,
		})
	}
	return jn
}

func (p Parse) MarshalJSON() ([]byte, error) {
	errs := p.errors
	if errs == nil {
		errs = []SyntaxError{}
	}
	return json.Marshal(jsonParse{Tree: p.Tree().toJSON(), Errors: errs})
}
