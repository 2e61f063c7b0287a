// Package render turns markup files into the compact document tree served to
// readers, together with the summary fields kept next to it in the content
// store.
package render

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"seconddraft/internal/domain"
	"seconddraft/internal/markup"
)

// Renderer parses markup with a shared highlighter. It is safe for concurrent use.
type Renderer struct {
	parser      parser.Parser
	highlighter Highlighter
}

// New creates a Renderer. A nil highlighter leaves code blocks as plain text.
func New(highlighter Highlighter) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{parser: md.Parser(), highlighter: highlighter}
}

// Render parses a markup file. Files without frontmatter render with empty
// metadata.
func (r *Renderer) Render(source string) (*domain.RenderedDocument, error) {
	var meta domain.PostMetadata
	body := source

	parsed, err := markup.Parse(source)
	switch {
	case err == nil:
		meta, body = parsed.Meta, parsed.Body
	case errors.Is(err, markup.ErrNoFrontmatter):
	default:
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	src := []byte(body)
	c := &converter{source: src, highlighter: r.highlighter}
	root := newElement("root")
	c.blocks(root, r.parser.Parse(text.NewReader(src)))

	tree := &Tree{Type: treeType, Value: root.value()[2:]}
	encoded, err := tree.MarshalBody()
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}

	doc := &domain.RenderedDocument{
		PostMetadata: meta,
		Body:         encoded,
		Description:  description(root),
		ContentHash:  Hash(source),
	}
	if doc.Title == "" {
		doc.Title = firstHeading(root)
	}
	if meta.CollectionID != "" && meta.PostID != "" {
		doc.ID = domain.DocumentID(meta.CollectionID, meta.PostID)
	}
	return doc, nil
}

// Hash returns the hex sha256 of the input.
func Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

func description(root *element) string {
	for _, c := range root.children {
		if el, ok := c.(*element); ok && el.tag == "p" {
			return strings.TrimSpace(el.text())
		}
	}
	return ""
}

func firstHeading(root *element) string {
	for _, c := range root.children {
		if el, ok := c.(*element); ok && el.tag == "h1" {
			return strings.TrimSpace(el.text())
		}
	}
	return ""
}

type converter struct {
	source      []byte
	highlighter Highlighter
}

func (c *converter) blocks(parent *element, n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.block(parent, child)
	}
}

func (c *converter) block(parent *element, n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		el := newElement("h" + strconv.Itoa(n.Level))
		if id, ok := n.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				el.props["id"] = string(b)
			}
		}
		c.inlines(el, n)
		parent.append(el)

	case *ast.Paragraph:
		el := newElement("p")
		c.inlines(el, n)
		parent.append(el)

	case *ast.TextBlock:
		// tight list items
		c.inlines(parent, n)

	case *ast.ThematicBreak:
		parent.append(newElement("hr"))

	case *ast.Blockquote:
		el := newElement("blockquote")
		c.blocks(el, n)
		parent.append(el)

	case *ast.List:
		el := newElement("ul")
		if n.IsOrdered() {
			el.tag = "ol"
			if n.Start != 1 {
				el.props["start"] = n.Start
			}
		}
		c.blocks(el, n)
		parent.append(el)

	case *ast.ListItem:
		el := newElement("li")
		c.blocks(el, n)
		parent.append(el)

	case *ast.FencedCodeBlock:
		parent.append(c.code(string(n.Language(c.source)), c.lines(n)))

	case *ast.CodeBlock:
		parent.append(c.code("", c.lines(n)))

	case *ast.HTMLBlock:
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.source))
		}
		parent.append(htmlBlock(raw)...)

	case *east.Table:
		parent.append(c.table(n))

	default:
		c.blocks(parent, n)
	}
}

func (c *converter) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.source))
	}
	return sb.String()
}

func (c *converter) code(language, code string) *element {
	pre := newElement("pre")
	pre.props["code"] = code
	if language != "" {
		pre.props["language"] = language
		pre.props["className"] = []string{"language-" + language}
	}

	inner := newElement("code")
	pre.append(inner)

	if language == "" || c.highlighter == nil {
		inner.append(code)
		return pre
	}

	lines, err := c.highlighter.Highlight(code, language)
	if err != nil {
		inner.append(code)
		return pre
	}

	for i, line := range lines {
		if i > 0 {
			inner.append("\n")
		}
		span := newElement("span")
		span.props["class"] = "line"
		for _, tok := range line {
			span.append(tokenNode(tok))
		}
		inner.append(span)
	}
	return pre
}

func tokenNode(tok Token) any {
	var style []string
	if tok.Color != "" {
		style = append(style, "color:"+tok.Color)
	}
	if tok.Bold {
		style = append(style, "font-weight:bold")
	}
	if tok.Italic {
		style = append(style, "font-style:italic")
	}
	if len(style) == 0 {
		return tok.Text
	}

	el := newElement("span")
	el.props["style"] = strings.Join(style, ";")
	el.append(tok.Text)
	return el
}

func (c *converter) table(n *east.Table) *element {
	table := newElement("table")
	tbody := newElement("tbody")

	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		cellTag := "td"
		tr := newElement("tr")
		if _, ok := row.(*east.TableHeader); ok {
			cellTag = "th"
		}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			el := newElement(cellTag)
			if tc, ok := cell.(*east.TableCell); ok && tc.Alignment != east.AlignNone {
				el.props["align"] = tc.Alignment.String()
			}
			c.inlines(el, cell)
			tr.append(el)
		}

		if cellTag == "th" {
			thead := newElement("thead")
			thead.append(tr)
			table.append(thead)
		} else {
			tbody.append(tr)
		}
	}

	if len(tbody.children) > 0 {
		table.append(tbody)
	}
	return table
}
