package richtext

import (
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
)

const (
	headingDepth     = 3
	defaultCTALabel  = "Read more"
	blockNodeTypeKey = "node_type"
)

// Translator converts rich-text documents to Markdown.
type Translator struct {
	logger *slog.Logger
}

// New creates a Translator. Unsupported block nodes are reported on logger.
func New(logger *slog.Logger) *Translator {
	return &Translator{logger: logger.With("component", "richtext")}
}

// ToMarkdown converts a content_json_string value. It reports false when the
// input is empty, not valid JSON, not a doc, or converts to nothing, in which
// case the caller should fall back to the post's HTML.
func (t *Translator) ToMarkdown(raw string) (string, bool) {
	root, ok := t.Convert(raw)
	if !ok {
		return "", false
	}
	return Serialize(root), true
}

// Convert parses raw and builds the Markdown tree.
func (t *Translator) Convert(raw string) (*Root, bool) {
	if raw == "" {
		return nil, false
	}

	var doc struct {
		Type    string  `json:"type"`
		Content *[]Node `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.logger.Debug("invalid rich-text json", "error", err)
		return nil, false
	}
	if doc.Type != NodeDoc || doc.Content == nil {
		return nil, false
	}

	root := &Root{Children: t.blocks(*doc.Content)}
	if len(root.Children) == 0 {
		return nil, false
	}
	return root, true
}

func (t *Translator) blocks(nodes []Node) []Block {
	out := make([]Block, 0, len(nodes))
	for i := range nodes {
		if b := t.block(&nodes[i]); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (t *Translator) block(n *Node) Block {
	switch n.Type {
	case NodeParagraph:
		children := t.inlines(n.Content)
		if len(children) == 0 {
			return nil
		}
		return &Paragraph{Children: children}

	case NodeHeading:
		// Source headings carry no usable level.
		return &Heading{Depth: headingDepth, Children: t.inlines(n.Content)}

	case NodeBlockquote:
		return &Blockquote{Children: t.blocks(n.Content)}

	case NodeBulletList:
		return &List{Items: t.listItems(n.Content)}

	case NodeOrderedList:
		return &List{Ordered: true, Start: listStart(n.Attrs), Items: t.listItems(n.Content)}

	case NodeImage:
		if attrString(n.Attrs, blockNodeTypeKey) != "block" {
			return &Paragraph{Children: []Inline{image(n.Attrs)}}
		}
		return &Paragraph{Children: []Inline{linkedImage(n.Attrs, "link")}}

	case NodeCustomImage:
		return &Paragraph{Children: []Inline{linkedImage(n.Attrs, "customLink")}}

	case NodeAudio, NodeVideo:
		label := "Audio"
		if n.Type == NodeVideo {
			label = "Video"
		}
		text := "[" + label + "]"
		if id := firstAttr(n.Attrs, "media_id", "data-media-id"); id != "" {
			text = "[" + label + ": " + id + "]"
		}
		return &Paragraph{Children: []Inline{&Text{Value: text}}}

	case NodeCTA:
		return ctaParagraph(n.Attrs)

	case NodeHorizontalRule:
		return &ThematicBreak{}

	default:
		t.logger.Warn("unsupported block node", "type", n.Type)
		return nil
	}
}

func (t *Translator) listItems(nodes []Node) []*ListItem {
	items := make([]*ListItem, 0, len(nodes))
	for i := range nodes {
		if nodes[i].Type != NodeListItem {
			continue
		}
		items = append(items, &ListItem{Children: t.blocks(nodes[i].Content)})
	}
	return items
}

func (t *Translator) inlines(nodes []Node) []Inline {
	out := make([]Inline, 0, len(nodes))
	for i := range nodes {
		if n := inline(&nodes[i]); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func inline(n *Node) Inline {
	switch n.Type {
	case NodeText:
		return textNode(n)
	case NodeHardBreak:
		return &Break{}
	case NodeImage, NodeCustomImage:
		return image(n.Attrs)
	case NodeMention:
		if name := firstAttr(n.Attrs, "full_name", "name"); name != "" {
			return &Text{Value: name}
		}
		return nil
	default:
		// paywallBreakpoint and anything unknown
		return nil
	}
}

// textNode wraps the text in its marks, last mark innermost, so the first
// listed mark ends up outermost.
func textNode(n *Node) Inline {
	var value string
	if n.Text != nil {
		value = *n.Text
	}

	var result Inline = &Text{Value: value}
	for i := len(n.Marks) - 1; i >= 0; i-- {
		result = applyMark(result, n.Marks[i])
	}
	return result
}

func applyMark(node Inline, mark Mark) Inline {
	switch mark.Type {
	case MarkBold:
		return &Strong{Children: []Inline{node}}
	case MarkItalic:
		return &Emphasis{Children: []Inline{node}}
	case MarkStrike:
		return &Delete{Children: []Inline{node}}
	case MarkLink:
		return &Link{URL: attrString(mark.Attrs, "href"), Children: []Inline{node}}
	case MarkUnderline:
		return &HTML{Value: "<u>" + phrasingToHTML(node) + "</u>"}
	default:
		return node
	}
}

func image(attrs map[string]any) *Image {
	img := &Image{
		URL: attrString(attrs, "src"),
		Alt: attrString(attrs, "alt"),
	}
	if attrSet(attrs, "caption") {
		img.Title = attrString(attrs, "caption")
	}
	return img
}

func linkedImage(attrs map[string]any, linkKey string) Inline {
	img := image(attrs)
	if !attrSet(attrs, linkKey) {
		return img
	}
	return &Link{URL: attrString(attrs, linkKey), Children: []Inline{img}}
}

func ctaParagraph(attrs map[string]any) *Paragraph {
	label := defaultCTALabel
	if attrSet(attrs, "button_text") {
		label = attrString(attrs, "button_text")
	}

	var button Inline = &Text{Value: label}
	if attrSet(attrs, "button_link") {
		button = &Link{URL: attrString(attrs, "button_link"), Children: []Inline{button}}
	}

	children := []Inline{button}
	if attrSet(attrs, "caption") {
		children = append(children, &Text{Value: " — " + attrString(attrs, "caption")})
	}
	return &Paragraph{Children: children}
}

func listStart(attrs map[string]any) int {
	v, ok := attrs["order"]
	if !ok || v == nil {
		return 1
	}
	switch t := v.(type) {
	case float64:
		if !math.IsNaN(t) && !math.IsInf(t, 0) {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return 1
}
