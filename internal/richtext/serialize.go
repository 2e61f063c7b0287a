package richtext

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	bulletMarker   = "-"
	emphasisMarker = "_"
	starEmphasis   = "*"
	strongMarker   = "**"
	deleteMarker   = "~~"
	ruleMarker     = "***"
	hardBreak      = "\\\n"
)

// Serialize renders a Markdown tree. Blocks are separated by a blank line and
// the document ends with a single newline. An empty tree yields "".
func Serialize(root *Root) string {
	if root == nil || len(root.Children) == 0 {
		return ""
	}
	return serializeBlocks(root.Children) + "\n"
}

func serializeBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, serializeBlock(b))
	}
	return strings.Join(parts, "\n\n")
}

func serializeBlock(b Block) string {
	switch n := b.(type) {
	case *Paragraph:
		return serializeInlines(n.Children, true)
	case *Heading:
		prefix := strings.Repeat("#", n.Depth)
		text := serializeInlines(n.Children, false)
		if text == "" {
			return prefix
		}
		return prefix + " " + text
	case *Blockquote:
		return prefixLines(serializeBlocks(n.Children), ">")
	case *List:
		return serializeList(n)
	case *ThematicBreak:
		return ruleMarker
	default:
		return ""
	}
}

func serializeList(l *List) string {
	items := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		marker := bulletMarker
		if l.Ordered {
			marker = fmt.Sprintf("%d.", l.Start+i)
		}
		items = append(items, indentItem(marker, serializeBlocks(item.Children)))
	}
	return strings.Join(items, "\n\n")
}

// indentItem puts marker in front of the first line and aligns the rest
// under the content column.
func indentItem(marker, content string) string {
	if content == "" {
		return marker
	}
	pad := strings.Repeat(" ", len(marker)+1)
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = marker + " " + line
		case line != "":
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func prefixLines(content, prefix string) string {
	if content == "" {
		return prefix
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = prefix
		} else {
			lines[i] = prefix + " " + line
		}
	}
	return strings.Join(lines, "\n")
}

func serializeInlines(nodes []Inline, atLineStart bool) string {
	parts := make([]inlinePart, 0, len(nodes))
	for _, n := range nodes {
		p := serializeInline(n, atLineStart)
		parts = append(parts, p)
		if s := p.String(); s != "" {
			atLineStart = strings.HasSuffix(s, "\n")
		}
	}
	fixDelimiters(parts)

	var sb strings.Builder
	prev := ""
	for _, p := range parts {
		s := p.String()
		if strings.HasSuffix(prev, "!") && strings.HasPrefix(s, "[") {
			// "![" would start an image.
			sb.WriteString(prev[:len(prev)-1] + `\!`)
		} else {
			sb.WriteString(prev)
		}
		prev = s
	}
	sb.WriteString(prev)
	return sb.String()
}

// inlinePart is one serialized inline node. Strong, emphasis and delete runs
// keep their marker apart from the content so it can be adjusted against the
// neighbouring output.
type inlinePart struct {
	text   string
	marker string
	lead   string
	trail  string
}

func (p inlinePart) String() string {
	if p.marker == "" {
		return p.lead + p.text + p.trail
	}
	return p.lead + p.marker + p.text + p.marker + p.trail
}

func attention(marker string, children []Inline) inlinePart {
	lead, core, trail := splitEdges(serializeInlines(children, false))
	if core == "" {
		return inlinePart{lead: lead, trail: trail}
	}
	return inlinePart{text: core, marker: marker, lead: lead, trail: trail}
}

// splitEdges moves surrounding whitespace out of a delimiter run, which could
// not open or close otherwise. A hard break moves out with its backslash.
func splitEdges(s string) (lead, core, trail string) {
	core = strings.TrimLeft(s, " \t\n")
	lead = s[:len(s)-len(core)]

	trimmed := strings.TrimRight(core, " \t\n")
	if len(trimmed) < len(core) && trailingBackslashes(trimmed)%2 == 1 {
		trimmed = trimmed[:len(trimmed)-1]
	}
	return lead, trimmed, core[len(trimmed):]
}

func trailingBackslashes(s string) int {
	n := 0
	for n < len(s) && s[len(s)-1-n] == '\\' {
		n++
	}
	return n
}

// fixDelimiters makes every delimiter run flanking. Emphasis next to a word
// character uses "*", since "_" cannot open or close inside a word. A word
// character touching punctuation just inside a marker is written as a
// character reference.
func fixDelimiters(parts []inlinePart) {
	for i := range parts {
		p := &parts[i]
		if p.marker == "" {
			continue
		}

		before, after := ' ', ' '
		if p.lead == "" && i > 0 {
			before, _ = utf8.DecodeLastRuneInString(parts[i-1].String())
		}
		if p.trail == "" && i+1 < len(parts) {
			after, _ = utf8.DecodeRuneInString(parts[i+1].String())
		}

		if p.marker == emphasisMarker && (isWordRune(before) || isWordRune(after)) {
			p.marker = starEmphasis
		}

		first, _ := utf8.DecodeRuneInString(p.text)
		last, _ := utf8.DecodeLastRuneInString(p.text)
		if isWordRune(before) && isPunctRune(first) {
			parts[i-1].encodeLast()
		}
		if isWordRune(after) && isPunctRune(last) {
			parts[i+1].encodeFirst()
		}
	}
}

// encodeLast and encodeFirst are only called on parts whose edge is a word
// character, which means plain text.
func (p *inlinePart) encodeLast() {
	r, size := utf8.DecodeLastRuneInString(p.text)
	p.text = p.text[:len(p.text)-size] + charRef(r)
}

func (p *inlinePart) encodeFirst() {
	r, size := utf8.DecodeRuneInString(p.text)
	p.text = charRef(r) + p.text[size:]
}

func charRef(r rune) string {
	return fmt.Sprintf("&#x%X;", r)
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && !unicode.IsSpace(r) && !isPunctRune(r)
}

func isPunctRune(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func serializeInline(n Inline, atLineStart bool) inlinePart {
	switch n := n.(type) {
	case *Text:
		return inlinePart{text: escapeText(n.Value, atLineStart)}
	case *Strong:
		return attention(strongMarker, n.Children)
	case *Emphasis:
		return attention(emphasisMarker, n.Children)
	case *Delete:
		return attention(deleteMarker, n.Children)
	case *Link:
		if isAutolink(n) {
			return inlinePart{text: "<" + n.URL + ">"}
		}
		return inlinePart{text: "[" + serializeInlines(n.Children, false) + "](" + destination(n.URL) + title(n.Title) + ")"}
	case *Image:
		return inlinePart{text: "![" + escapeText(n.Alt, false) + "](" + destination(n.URL) + title(n.Title) + ")"}
	case *Break:
		return inlinePart{text: hardBreak}
	case *HTML:
		return inlinePart{text: n.Value}
	default:
		return inlinePart{}
	}
}

var schemePattern = regexp.MustCompile(`(?i)^[a-z][a-z+.-]+:`)

func isAutolink(l *Link) bool {
	if l.Title != "" || len(l.Children) != 1 {
		return false
	}
	t, ok := l.Children[0].(*Text)
	if !ok || t.Value != l.URL {
		return false
	}
	return schemePattern.MatchString(l.URL) && !strings.ContainsAny(l.URL, " \t\n<>")
}

func destination(url string) string {
	if url == "" {
		return "<>"
	}
	if strings.ContainsAny(url, " \t\n") || strings.Count(url, "(") != strings.Count(url, ")") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(url) + ">"
	}
	return url
}

func title(t string) string {
	if t == "" {
		return ""
	}
	return ` "` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(t) + `"`
}

var (
	entityPattern      = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[A-Za-z][A-Za-z0-9]*);`)
	orderedLinePattern = regexp.MustCompile(`^([0-9]{1,9})([.)])`)
)

// escapeText backslash-escapes characters that would otherwise be read as
// Markdown syntax.
func escapeText(s string, atLineStart bool) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	lines := strings.Split(s, "\n")
	for li, line := range lines {
		if li > 0 {
			sb.WriteByte('\n')
		}
		escapeLine(&sb, line, atLineStart || li > 0)
	}
	return sb.String()
}

func escapeLine(sb *strings.Builder, line string, lineStart bool) {
	if lineStart {
		// Leading whitespace would be dropped or turn the line into code.
		for len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			if line[0] == ' ' {
				sb.WriteString("&#x20;")
			} else {
				sb.WriteString("&#x9;")
			}
			line = line[1:]
		}
		if m := orderedLinePattern.FindStringSubmatch(line); m != nil {
			sb.WriteString(m[1])
			sb.WriteByte('\\')
			sb.WriteString(m[2])
			line = line[len(m[0]):]
		} else if line != "" {
			switch line[0] {
			case '#', '>', '-', '+', '=':
				sb.WriteByte('\\')
				sb.WriteByte(line[0])
				line = line[1:]
			}
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '\\', '`', '*', '_', '[', ']', '~', '|':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '<':
			if i+1 < len(line) && isTagStart(line[i+1]) {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		case '&':
			if entityPattern.MatchString(line[i:]) {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
}

func isTagStart(c byte) bool {
	return c == '/' || c == '!' || c == '?' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
