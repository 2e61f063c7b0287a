package richtext

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// phrasingToHTML renders inline content as HTML. It is used inside raw HTML
// wrappers such as <u>, where Markdown syntax is not interpreted.
func phrasingToHTML(n Inline) string {
	switch n := n.(type) {
	case *Text:
		return htmlEscaper.Replace(n.Value)
	case *Strong:
		return "<strong>" + childrenToHTML(n.Children) + "</strong>"
	case *Emphasis:
		return "<em>" + childrenToHTML(n.Children) + "</em>"
	case *Delete:
		return "<del>" + childrenToHTML(n.Children) + "</del>"
	case *Link:
		return `<a href="` + htmlEscaper.Replace(n.URL) + `">` + childrenToHTML(n.Children) + "</a>"
	case *HTML:
		return n.Value
	case *Break:
		return "<br>"
	default:
		return ""
	}
}

func childrenToHTML(nodes []Inline) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(phrasingToHTML(n))
	}
	return sb.String()
}
