package markdown

// Block is one renderable element of a parsed document. The set of
// implementations is closed: renderers switch over the concrete types and
// the sealed marker method keeps external packages from adding variants
// the switch would silently drop.
type Block interface {
	block()
}

var (
	_ Block = Heading{}
	_ Block = Paragraph{}
	_ Block = CodeBlock{}
	_ Block = List{}
	_ Block = Quote{}
	_ Block = Table{}
	_ Block = Rule{}
	_ Block = Container{}
)

// Run is a span of inline text with uniform styling. Links flatten to their
// visible text; images flatten to their alt text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Heading is a section heading. Level follows the source (1–6); renderers
// may clamp deeper levels to their smallest heading style.
type Heading struct {
	Level int
	Runs  []Run
}

// Paragraph is a block of flowing inline text.
type Paragraph struct {
	Runs []Run
}

// CodeBlock is a fenced or indented code block. Language is the fence
// info-string hint and is empty for indented blocks; Text keeps the raw
// code including interior newlines.
type CodeBlock struct {
	Language string
	Text     string
}

// ListItem is one entry of a List: its own inline text plus any nested
// blocks (sub-lists, code blocks, further paragraphs).
type ListItem struct {
	Runs     []Run
	Children []Block
}

// List is an ordered or unordered list. Start is the first ordinal of an
// ordered list and 1 when the source does not say otherwise.
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// Quote is a block quote wrapping nested blocks.
type Quote struct {
	Children []Block
}

// Table holds rows of plain cell text, header row first.
type Table struct {
	Rows [][]string
}

// Rule is a thematic break.
type Rule struct{}

// Container groups blocks that have no dedicated variant; renderers render
// its children in order.
type Container struct {
	Children []Block
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (CodeBlock) block() {}
func (List) block()      {}
func (Quote) block()     {}
func (Table) block()     {}
func (Rule) block()      {}
func (Container) block() {}

// Document is a parsed Markdown source: top-level blocks in order plus the
// title taken from the first level-1 heading, empty when there is none.
type Document struct {
	Title  string
	Blocks []Block
}
