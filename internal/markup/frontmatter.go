// Package markup reads and writes markup files: a frontmatter block with the
// post metadata followed by a blank line and the Markdown body.
package markup

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"seconddraft/internal/domain"
)

const delimiter = "---"

var ErrNoFrontmatter = errors.New("markup: missing frontmatter")

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Write prefixes body with the frontmatter for meta.
func Write(meta domain.PostMetadata, body string) string {
	var sb strings.Builder
	sb.WriteString(delimiter + "\n")
	field(&sb, "title", meta.Title)
	field(&sb, "postId", meta.PostID)
	field(&sb, "publishedAt", meta.PublishedAt)
	field(&sb, "author", meta.Author)
	field(&sb, "collectionName", meta.CollectionName)
	field(&sb, "collectionId", meta.CollectionID)
	sb.WriteString(delimiter + "\n\n")
	sb.WriteString(body)
	return sb.String()
}

func field(sb *strings.Builder, key, value string) {
	fmt.Fprintf(sb, "%s: \"%s\"\n", key, quoteEscaper.Replace(value))
}

// Document is a parsed markup file.
type Document struct {
	Meta  domain.PostMetadata
	Body  string
	Extra map[string]any // every frontmatter key, known or not
}

// Parse splits text into frontmatter and body.
func Parse(text string) (*Document, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if !strings.HasPrefix(text, delimiter+"\n") {
		return nil, ErrNoFrontmatter
	}
	rest := text[len(delimiter)+1:]

	var header, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n"):
		body = rest[len(delimiter)+1:]
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n"+delimiter) {
				return nil, ErrNoFrontmatter
			}
			end = len(rest) - len(delimiter) - 1
			header, body = rest[:end], ""
		} else {
			header, body = rest[:end], rest[end+len(delimiter)+2:]
		}
	}

	doc := &Document{Body: strings.TrimPrefix(body, "\n")}
	if err := yaml.Unmarshal([]byte(header), &doc.Meta); err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	if err := yaml.Unmarshal([]byte(header), &doc.Extra); err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	return doc, nil
}
