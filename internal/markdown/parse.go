package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extensionAST "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var parser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
).Parser()

// Parse turns Markdown source into a Document. Parsing never fails: inputs
// that fit no known construct fall through to plain paragraphs or are
// dropped (raw HTML blocks), and an empty source yields a document with no
// blocks.
func Parse(source []byte) Document {
	root := parser.Parse(text.NewReader(source))

	var doc Document
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if b := mapBlock(n, source); b != nil {
			doc.Blocks = append(doc.Blocks, b)
		}
	}
	doc.Title = firstHeadingTitle(doc.Blocks)
	return doc
}

// mapBlock converts one AST node to its document variant. Unknown node
// kinds with children become a Container; leaves with no mapping (raw HTML
// blocks) return nil and disappear from the document.
func mapBlock(n ast.Node, source []byte) Block {
	switch nd := n.(type) {
	case *ast.Heading:
		return Heading{Level: nd.Level, Runs: collectRuns(nd, source)}
	case *ast.Paragraph:
		return Paragraph{Runs: collectRuns(nd, source)}
	case *ast.TextBlock:
		return Paragraph{Runs: collectRuns(nd, source)}
	case *ast.FencedCodeBlock:
		lang := ""
		if nd.Info != nil {
			lang = string(nd.Language(source))
		}
		return CodeBlock{Language: lang, Text: blockText(nd, source)}
	case *ast.CodeBlock:
		return CodeBlock{Text: blockText(nd, source)}
	case *ast.List:
		return mapList(nd, source)
	case *ast.Blockquote:
		return Quote{Children: mapChildren(nd, source)}
	case *extensionAST.Table:
		return mapTable(nd, source)
	case *ast.ThematicBreak:
		return Rule{}
	case *ast.HTMLBlock:
		return nil
	default:
		if n.HasChildren() {
			return Container{Children: mapChildren(n, source)}
		}
		return nil
	}
}

func mapChildren(n ast.Node, source []byte) []Block {
	var out []Block
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if b := mapBlock(child, source); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func mapList(list *ast.List, source []byte) List {
	out := List{Ordered: list.IsOrdered(), Start: list.Start}
	if !out.Ordered || out.Start == 0 {
		out.Start = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		out.Items = append(out.Items, mapListItem(li, source))
	}
	return out
}

// mapListItem takes the item's first paragraph (or text block, for tight
// lists) as the item text; everything after it becomes nested child blocks.
func mapListItem(li *ast.ListItem, source []byte) ListItem {
	var item ListItem
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		if item.Runs == nil {
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				item.Runs = collectRuns(child, source)
				continue
			}
		}
		if b := mapBlock(child, source); b != nil {
			item.Children = append(item.Children, b)
		}
	}
	return item
}

// mapTable flattens a GFM table to plain cell text. The header is a row of
// cells itself (the extension hangs TableCell nodes directly off
// TableHeader), so both node kinds collect the same way.
func mapTable(tbl *extensionAST.Table, source []byte) Table {
	var t Table
	for child := tbl.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extensionAST.TableHeader, *extensionAST.TableRow:
			t.Rows = append(t.Rows, rowCells(child, source))
		}
	}
	return t
}

func rowCells(row ast.Node, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extensionAST.TableCell); ok {
			cells = append(cells, plainText(collectRuns(cell, source)))
		}
	}
	return cells
}

// collectRuns flattens a node's inline content to styled runs.
func collectRuns(node ast.Node, source []byte) []Run {
	var runs []Run
	appendRuns(node, source, false, false, &runs)
	return runs
}

func appendRuns(node ast.Node, source []byte, bold, italic bool, out *[]Run) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			if text := string(c.Segment.Value(source)); text != "" {
				*out = append(*out, Run{Text: text, Bold: bold, Italic: italic})
			}
			// Line breaks inside a paragraph flow as spaces.
			if c.SoftLineBreak() || c.HardLineBreak() {
				*out = append(*out, Run{Text: " ", Bold: bold, Italic: italic})
			}
		case *ast.String:
			if len(c.Value) > 0 {
				*out = append(*out, Run{Text: string(c.Value), Bold: bold, Italic: italic})
			}
		case *ast.Emphasis:
			if c.Level >= 2 {
				appendRuns(c, source, true, italic, out)
			} else {
				appendRuns(c, source, bold, true, out)
			}
		case *ast.CodeSpan:
			if text := nodeText(c, source); text != "" {
				*out = append(*out, Run{Text: text, Bold: bold, Italic: italic, Code: true})
			}
		case *ast.Link:
			appendRuns(c, source, bold, italic, out)
		case *ast.AutoLink:
			if label := string(c.Label(source)); label != "" {
				*out = append(*out, Run{Text: label, Bold: bold, Italic: italic})
			}
		case *ast.Image:
			appendRuns(c, source, bold, italic, out)
		default:
			if child.HasChildren() {
				appendRuns(child, source, bold, italic, out)
			}
		}
	}
}

// nodeText concatenates the raw text of a node's immediate children.
func nodeText(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.String:
			b.Write(c.Value)
		}
	}
	return b.String()
}

// blockText concatenates the source line segments of a code block,
// including each line's trailing newline.
func blockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func plainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func firstHeadingTitle(blocks []Block) string {
	for _, b := range blocks {
		if h, ok := b.(Heading); ok && h.Level == 1 {
			return strings.TrimSpace(plainText(h.Runs))
		}
	}
	return ""
}
