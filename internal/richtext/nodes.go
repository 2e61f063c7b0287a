// Package richtext converts Patreon's content_json_string documents into
// Markdown.
//
// The input is a ProseMirror style tree of Node values. Conversion goes through
// a small Markdown syntax tree (see markdown.go) so that every block and inline
// variant is handled in exactly one place, then the tree is serialised with
// fixed options: "-" bullets, "_" emphasis, "**" strong and backtick fences.
package richtext

import (
	"strconv"
)

// Node is one node of the Patreon rich-text document.
type Node struct {
	Type    string         `json:"type"`
	Text    *string        `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// Mark decorates a text node.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

const (
	NodeDoc               = "doc"
	NodeParagraph         = "paragraph"
	NodeHeading           = "heading"
	NodeBlockquote        = "blockquote"
	NodeBulletList        = "bulletList"
	NodeOrderedList       = "orderedList"
	NodeListItem          = "listItem"
	NodeImage             = "image"
	NodeCustomImage       = "customImage"
	NodeHardBreak         = "hardBreak"
	NodeHorizontalRule    = "horizontalRule"
	NodeText              = "text"
	NodeVideo             = "video"
	NodeAudio             = "audio"
	NodeMention           = "mention"
	NodePaywallBreakpoint = "paywallBreakpoint"
	NodeCTA               = "cta"

	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkStrike    = "strike"
	MarkLink      = "link"
)

// attrString mirrors String(value ?? "") for JSON scalars.
func attrString(attrs map[string]any, key string) string {
	v, ok := attrs[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// attrSet reports whether an attribute holds a truthy JSON value.
func attrSet(attrs map[string]any, key string) bool {
	v, ok := attrs[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// firstAttr returns the first attribute that is present and not null.
func firstAttr(attrs map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := attrs[key]; ok && v != nil {
			return attrString(attrs, key)
		}
	}
	return ""
}
