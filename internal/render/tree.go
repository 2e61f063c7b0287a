package render

import (
	"encoding/json"
	"strings"
)

// Tree is the compact document form stored in the content store. Every node
// is either a string or an array [tag, props, ...children].
type Tree struct {
	Type  string `json:"type"`
	Value []any  `json:"value"`
}

const treeType = "minimark"

func (t *Tree) MarshalBody() (json.RawMessage, error) {
	return json.Marshal(t)
}

type element struct {
	tag      string
	props    map[string]any
	children []any // string or *element
}

func newElement(tag string) *element {
	return &element{tag: tag, props: map[string]any{}}
}

func (e *element) append(nodes ...any) {
	for _, n := range nodes {
		switch v := n.(type) {
		case string:
			if v == "" {
				continue
			}
			if last := len(e.children) - 1; last >= 0 {
				if s, ok := e.children[last].(string); ok {
					e.children[last] = s + v
					continue
				}
			}
			e.children = append(e.children, v)
		case *element:
			if v != nil {
				e.children = append(e.children, v)
			}
		}
	}
}

func (e *element) value() []any {
	out := make([]any, 0, len(e.children)+2)
	out = append(out, e.tag, e.props)
	for _, c := range e.children {
		if el, ok := c.(*element); ok {
			out = append(out, el.value())
		} else {
			out = append(out, c)
		}
	}
	return out
}

func (e *element) text() string {
	var sb strings.Builder
	for _, c := range e.children {
		switch v := c.(type) {
		case string:
			sb.WriteString(v)
		case *element:
			sb.WriteString(v.text())
		}
	}
	return sb.String()
}
