package render

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	openTagPattern  = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9-]*)((?:\s[^>]*?)?)\s*(/?)>$`)
	closeTagPattern = regexp.MustCompile(`^</([A-Za-z][A-Za-z0-9-]*)\s*>$`)
	attrPattern     = regexp.MustCompile(`([A-Za-z_:][-A-Za-z0-9_:.]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'=<>` + "`" + `]+)))?`)
	entityPattern   = regexp.MustCompile(`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{1,31});`)
)

var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "wbr": true, "source": true,
}

// inlineBuilder nests content between inline raw HTML open and close tags,
// so "<u>", "x", "</u>" becomes one u element.
type inlineBuilder struct {
	stack []*element
}

func (b *inlineBuilder) top() *element {
	return b.stack[len(b.stack)-1]
}

func (b *inlineBuilder) raw(tag string) {
	if m := closeTagPattern.FindStringSubmatch(tag); m != nil {
		name := strings.ToLower(m[1])
		for i := len(b.stack) - 1; i > 0; i-- {
			if b.stack[i].tag == name {
				b.stack = b.stack[:i]
				return
			}
		}
		return
	}

	if m := openTagPattern.FindStringSubmatch(tag); m != nil {
		el := newElement(strings.ToLower(m[1]))
		for _, a := range attrPattern.FindAllStringSubmatch(m[2], -1) {
			name := strings.ToLower(a[1])
			if a[2] == "" && a[3] == "" && a[4] == "" && !strings.Contains(a[0], "=") {
				el.props[name] = true
				continue
			}
			el.props[name] = html.UnescapeString(a[2] + a[3] + a[4])
		}
		b.top().append(el)
		if m[3] == "" && !voidElements[el.tag] {
			b.stack = append(b.stack, el)
		}
		return
	}

	if strings.HasPrefix(tag, "<!--") {
		return
	}
	b.top().append(tag)
}

func (c *converter) inlines(parent *element, n ast.Node) {
	b := &inlineBuilder{stack: []*element{parent}}
	c.inlineChildren(b, n)
}

func (c *converter) inlineChildren(b *inlineBuilder, n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.inline(b, child)
	}
}

func (c *converter) inline(b *inlineBuilder, n ast.Node) {
	parent := b.top()

	switch n := n.(type) {
	case *ast.Text:
		value := string(n.Segment.Value(c.source))
		if n.HardLineBreak() {
			value = strings.TrimSuffix(value, `\`)
		}
		parent.append(unescape(value))
		switch {
		case n.HardLineBreak():
			parent.append(newElement("br"))
		case n.SoftLineBreak():
			parent.append("\n")
		}

	case *ast.String:
		if n.IsCode() || n.IsRaw() {
			parent.append(string(n.Value))
		} else {
			parent.append(unescape(string(n.Value)))
		}

	case *ast.CodeSpan:
		el := newElement("code")
		el.append(c.plainText(n, false))
		parent.append(el)

	case *ast.Emphasis:
		el := newElement("em")
		if n.Level == 2 {
			el.tag = "strong"
		}
		c.inlines(el, n)
		parent.append(el)

	case *east.Strikethrough:
		el := newElement("del")
		c.inlines(el, n)
		parent.append(el)

	case *ast.Link:
		el := newElement("a")
		el.props["href"] = string(n.Destination)
		if len(n.Title) > 0 {
			el.props["title"] = string(n.Title)
		}
		c.inlines(el, n)
		parent.append(el)

	case *ast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		el := newElement("a")
		el.props["href"] = url
		el.append(string(n.Label(c.source)))
		parent.append(el)

	case *ast.Image:
		el := newElement("img")
		el.props["src"] = string(n.Destination)
		el.props["alt"] = c.plainText(n, true)
		if len(n.Title) > 0 {
			el.props["title"] = string(n.Title)
		}
		parent.append(el)

	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(c.source))
		}
		b.raw(sb.String())

	case *east.TaskCheckBox:
		el := newElement("input")
		el.props["type"] = "checkbox"
		el.props["disabled"] = true
		if n.IsChecked {
			el.props["checked"] = true
		}
		parent.append(el)

	default:
		c.inlineChildren(b, n)
	}
}

// plainText collects the text below n, optionally resolving escapes.
func (c *converter) plainText(n ast.Node, resolve bool) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var v string
		switch t := node.(type) {
		case *ast.Text:
			v = string(t.Segment.Value(c.source))
		case *ast.String:
			v = string(t.Value)
		default:
			return ast.WalkContinue, nil
		}
		if resolve {
			v = unescape(v)
		}
		sb.WriteString(v)
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// unescape resolves backslash escapes and character references in one pass,
// so an escaped "\&amp;" stays literal.
func unescape(s string) string {
	if !strings.ContainsAny(s, `\&`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]):
			sb.WriteByte(s[i+1])
			i++
		case c == '&':
			if m := entityPattern.FindString(s[i:]); m != "" {
				sb.WriteString(html.UnescapeString(m))
				i += len(m) - 1
				continue
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

// htmlBlock converts a raw HTML block into tree nodes.
func htmlBlock(raw string) []any {
	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return []any{raw}
	}

	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if v := fromHTML(n); v != nil {
			out = append(out, v)
		}
	}
	return out
}

func fromHTML(n *html.Node) any {
	switch n.Type {
	case html.TextNode:
		return n.Data
	case html.ElementNode:
		el := newElement(n.Data)
		for _, a := range n.Attr {
			el.props[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if v := fromHTML(c); v != nil {
				el.append(v)
			}
		}
		return el
	default:
		return nil
	}
}
