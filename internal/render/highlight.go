package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the highlighting theme used by the CLI.
const DefaultStyle = "material"

// Token is a run of code text with one style.
type Token struct {
	Text   string
	Color  string
	Bold   bool
	Italic bool
}

// Highlighter splits code into styled lines. Implementations must be safe for
// concurrent use.
type Highlighter interface {
	Highlight(code, language string) ([][]Token, error)
}

// ChromaHighlighter highlights with a chroma style. Build it once and share it.
type ChromaHighlighter struct {
	style *chroma.Style
}

func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	return &ChromaHighlighter{style: styles.Get(styleName)}
}

func (h *ChromaHighlighter) Highlight(code, language string) ([][]Token, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenise %s: %w", language, err)
	}

	var out [][]Token
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		tokens := make([]Token, 0, len(line))
		for _, tok := range line {
			value := strings.TrimSuffix(tok.Value, "\n")
			if value == "" {
				continue
			}
			entry := h.style.Get(tok.Type)
			t := Token{
				Text:   value,
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			}
			if entry.Colour.IsSet() {
				t.Color = entry.Colour.String()
			}
			tokens = append(tokens, t)
		}
		out = append(out, tokens)
	}
	return out, nil
}
