// Package htmlmd converts post HTML into Markdown. It is the fallback used
// when a post carries no usable rich-text document.
package htmlmd

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// strippedSelector lists elements that never carry readable post content.
const strippedSelector = "script, style, noscript, iframe, template"

// Converter turns HTML fragments into Markdown with ATX headings and fenced
// code blocks.
type Converter struct {
	conv *md.Converter
}

// New creates a Converter. It is safe for concurrent use.
func New() *Converter {
	return &Converter{
		conv: md.NewConverter("", true, &md.Options{
			HeadingStyle:     "atx",
			CodeBlockStyle:   "fenced",
			Fence:            "```",
			BulletListMarker: "-",
			EmDelimiter:      "_",
			StrongDelimiter:  "**",
		}),
	}
}

// Convert returns the Markdown for html. Blank input yields "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(strippedSelector).Remove()
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" && s.Find("img, br").Length() == 0 {
			s.Remove()
		}
	})

	return strings.TrimSpace(c.conv.Convert(doc.Selection)), nil
}
