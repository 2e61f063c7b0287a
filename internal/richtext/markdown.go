package richtext

// Root is a Markdown document.
type Root struct {
	Children []Block
}

// Block is a flow-level Markdown node. The set is closed.
type Block interface {
	block()
}

// Inline is a phrasing-level Markdown node. The set is closed.
type Inline interface {
	inline()
}

type Paragraph struct {
	Children []Inline
}

type Heading struct {
	Depth    int
	Children []Inline
}

type Blockquote struct {
	Children []Block
}

type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

type ListItem struct {
	Children []Block
}

type ThematicBreak struct{}

func (*Paragraph) block()     {}
func (*Heading) block()       {}
func (*Blockquote) block()    {}
func (*List) block()          {}
func (*ThematicBreak) block() {}

type Text struct {
	Value string
}

type Strong struct {
	Children []Inline
}

type Emphasis struct {
	Children []Inline
}

type Delete struct {
	Children []Inline
}

type Link struct {
	URL      string
	Title    string
	Children []Inline
}

type Image struct {
	URL   string
	Alt   string
	Title string
}

type Break struct{}

// HTML is raw inline HTML passed through verbatim.
type HTML struct {
	Value string
}

func (*Text) inline()     {}
func (*Strong) inline()   {}
func (*Emphasis) inline() {}
func (*Delete) inline()   {}
func (*Link) inline()     {}
func (*Image) inline()    {}
func (*Break) inline()    {}
func (*HTML) inline()     {}
