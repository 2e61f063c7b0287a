package render

import (
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seconddraft/internal/domain"
	"seconddraft/internal/markup"
)

type stubHighlighter struct {
	calls atomic.Int32
	err   error
}

func (h *stubHighlighter) Highlight(code, language string) ([][]Token, error) {
	h.calls.Add(1)
	if h.err != nil {
		return nil, h.err
	}
	return [][]Token{{
		{Text: strings.TrimSuffix(code, "\n"), Color: "#ffffff", Bold: true},
	}}, nil
}

var testMeta = domain.PostMetadata{
	Title:          "A Post",
	PostID:         "101",
	PublishedAt:    "2024-05-01T10:00:00.000+00:00",
	Author:         "Ada",
	CollectionName: "Stories",
	CollectionID:   "c1",
}

func decodeTree(t *testing.T, doc *domain.RenderedDocument) Tree {
	t.Helper()
	var tree Tree
	require.NoError(t, json.Unmarshal(doc.Body, &tree))
	assert.Equal(t, "minimark", tree.Type)
	return tree
}

func TestRender(t *testing.T) {
	h := &stubHighlighter{}
	r := New(h)

	source := markup.Write(testMeta, "### Hello\n\nFirst **para** <u>x &amp; y</u>.\n\n```go\nfmt.Println(1)\n```\n")
	doc, err := r.Render(source)
	require.NoError(t, err)

	assert.Equal(t, testMeta, doc.PostMetadata)
	assert.Equal(t, "content/c1/posts/101.md", doc.ID)
	assert.Equal(t, "First para x & y.", doc.Description)
	assert.Equal(t, Hash(source), doc.ContentHash)
	assert.Len(t, doc.ContentHash, 64)

	tree := decodeTree(t, doc)
	require.Len(t, tree.Value, 3)

	assert.Equal(t, []any{"h3", map[string]any{"id": "hello"}, "Hello"}, tree.Value[0])
	assert.Equal(t, []any{
		"p", map[string]any{},
		"First ",
		[]any{"strong", map[string]any{}, "para"},
		" ",
		[]any{"u", map[string]any{}, "x & y"},
		".",
	}, tree.Value[1])

	pre := tree.Value[2].([]any)
	assert.Equal(t, "pre", pre[0])
	props := pre[1].(map[string]any)
	assert.Equal(t, "go", props["language"])
	assert.Equal(t, "fmt.Println(1)\n", props["code"])
	assert.Equal(t, []any{
		"code", map[string]any{},
		[]any{"span", map[string]any{"class": "line"},
			[]any{"span", map[string]any{"style": "color:#ffffff;font-weight:bold"}, "fmt.Println(1)"},
		},
	}, pre[2])
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestRender_NestedUnderline(t *testing.T) {
	doc, err := New(nil).Render(`<u><strong><a href="https://x.io/?a=1&amp;b=2">hi</a></strong></u>` + "\n")
	require.NoError(t, err)

	tree := decodeTree(t, doc)
	require.Len(t, tree.Value, 1)
	assert.Equal(t, []any{
		"p", map[string]any{},
		[]any{"u", map[string]any{},
			[]any{"strong", map[string]any{},
				[]any{"a", map[string]any{"href": "https://x.io/?a=1&b=2"}, "hi"},
			},
		},
	}, tree.Value[0])
}

func TestRender_WithoutFrontmatter(t *testing.T) {
	doc, err := New(nil).Render("# Title\n\nJust \\*text\\*\n")
	require.NoError(t, err)

	assert.Empty(t, doc.ID)
	assert.Equal(t, "Title", doc.Title)
	assert.Equal(t, "Just *text*", doc.Description)
}

func TestRender_ListsQuotesAndBreaks(t *testing.T) {
	doc, err := New(nil).Render("- one\n- two\n\n3. three\n\n> quoted\n\nline\\\nnext\n\n***\n")
	require.NoError(t, err)

	tree := decodeTree(t, doc)
	require.Len(t, tree.Value, 5)
	assert.Equal(t, []any{
		"ul", map[string]any{},
		[]any{"li", map[string]any{}, "one"},
		[]any{"li", map[string]any{}, "two"},
	}, tree.Value[0])
	assert.Equal(t, []any{
		"ol", map[string]any{"start": float64(3)},
		[]any{"li", map[string]any{}, "three"},
	}, tree.Value[1])
	assert.Equal(t, []any{
		"blockquote", map[string]any{},
		[]any{"p", map[string]any{}, "quoted"},
	}, tree.Value[2])
	assert.Equal(t, []any{
		"p", map[string]any{}, "line", []any{"br", map[string]any{}}, "next",
	}, tree.Value[3])
	assert.Equal(t, []any{"hr", map[string]any{}}, tree.Value[4])
}

func TestRender_ImagesAndLinks(t *testing.T) {
	doc, err := New(nil).Render(`[![A](https://i.io/a.png "Cap")](https://l.io) ~~gone~~` + "\n")
	require.NoError(t, err)

	tree := decodeTree(t, doc)
	require.Len(t, tree.Value, 1)
	assert.Equal(t, []any{
		"p", map[string]any{},
		[]any{"a", map[string]any{"href": "https://l.io"},
			[]any{"img", map[string]any{"src": "https://i.io/a.png", "alt": "A", "title": "Cap"}},
		},
		" ",
		[]any{"del", map[string]any{}, "gone"},
	}, tree.Value[0])
}

func TestRender_HTMLBlock(t *testing.T) {
	doc, err := New(nil).Render("<div class=\"note\">\n<p>Hi</p>\n</div>\n")
	require.NoError(t, err)

	tree := decodeTree(t, doc)
	require.Len(t, tree.Value, 1)
	div := tree.Value[0].([]any)
	assert.Equal(t, "div", div[0])
	assert.Equal(t, map[string]any{"class": "note"}, div[1])
}

func TestRender_HighlighterErrorFallsBackToText(t *testing.T) {
	doc, err := New(&stubHighlighter{err: errors.New("no lexer")}).Render("```go\nx := 1\n```\n")
	require.NoError(t, err)

	tree := decodeTree(t, doc)
	pre := tree.Value[0].([]any)
	assert.Equal(t, []any{"code", map[string]any{}, "x := 1\n"}, pre[2])
}

func TestRender_BadFrontmatter(t *testing.T) {
	_, err := New(nil).Render("---\ntitle: [oops\n---\nbody\n")
	assert.Error(t, err)
}

func TestChromaHighlighter(t *testing.T) {
	h := NewChromaHighlighter(DefaultStyle)

	lines, err := h.Highlight("package main\n\nfunc main() {}\n", "go")
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	var first strings.Builder
	colored := false
	for _, tok := range lines[0] {
		first.WriteString(tok.Text)
		if tok.Color != "" {
			colored = true
		}
	}
	assert.Equal(t, "package main", first.String())
	assert.True(t, colored)

	_, err = h.Highlight("whatever", "no-such-language")
	assert.NoError(t, err)
}
