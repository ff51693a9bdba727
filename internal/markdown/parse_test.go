package markdown

// Notes:
// - Assertions prefer concatenated run text over exact run boundaries:
//   goldmark may split plain text into several nodes, but emphasis and
//   code spans always form their own runs
// - Structure tests use type assertions on the closed Block variants

import (
	"testing"
)

func runsText(runs []Run) string {
	return plainText(runs)
}

func findRun(runs []Run, text string) (Run, bool) {
	for _, r := range runs {
		if r.Text == text {
			return r, true
		}
	}
	return Run{}, false
}

func TestParseHeadingsAndTitle(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("# Top Title\n\n## Section\n\nBody text.\n"))

	if doc.Title != "Top Title" {
		t.Errorf("Title = %q, want %q", doc.Title, "Top Title")
	}
	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}

	h1, ok := doc.Blocks[0].(Heading)
	if !ok || h1.Level != 1 {
		t.Fatalf("block 0 = %#v, want level-1 Heading", doc.Blocks[0])
	}
	if runsText(h1.Runs) != "Top Title" {
		t.Errorf("heading text = %q, want %q", runsText(h1.Runs), "Top Title")
	}

	h2, ok := doc.Blocks[1].(Heading)
	if !ok || h2.Level != 2 {
		t.Fatalf("block 1 = %#v, want level-2 Heading", doc.Blocks[1])
	}

	p, ok := doc.Blocks[2].(Paragraph)
	if !ok {
		t.Fatalf("block 2 = %#v, want Paragraph", doc.Blocks[2])
	}
	if runsText(p.Runs) != "Body text." {
		t.Errorf("paragraph text = %q, want %q", runsText(p.Runs), "Body text.")
	}
}

func TestParseTitleFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("## Only a subsection\n"))
	if doc.Title != "" {
		t.Errorf("Title = %q, want empty when no level-1 heading exists", doc.Title)
	}
}

func TestParseInlineStyles(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("plain **bold** *ital* `code` ***both***\n"))
	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	p, ok := doc.Blocks[0].(Paragraph)
	if !ok {
		t.Fatalf("block = %#v, want Paragraph", doc.Blocks[0])
	}

	if got := runsText(p.Runs); got != "plain bold ital code both" {
		t.Errorf("concatenated text = %q, want %q", got, "plain bold ital code both")
	}

	bold, ok := findRun(p.Runs, "bold")
	if !ok || !bold.Bold || bold.Italic || bold.Code {
		t.Errorf("bold run = %+v, want Bold only", bold)
	}
	ital, ok := findRun(p.Runs, "ital")
	if !ok || !ital.Italic || ital.Bold {
		t.Errorf("italic run = %+v, want Italic only", ital)
	}
	code, ok := findRun(p.Runs, "code")
	if !ok || !code.Code {
		t.Errorf("code run = %+v, want Code", code)
	}
	both, ok := findRun(p.Runs, "both")
	if !ok || !both.Bold || !both.Italic {
		t.Errorf("bold-italic run = %+v, want Bold and Italic", both)
	}
}

func TestParseSoftBreakBecomesSpace(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("line one\nline two\n"))
	p, ok := doc.Blocks[0].(Paragraph)
	if !ok {
		t.Fatalf("block = %#v, want Paragraph", doc.Blocks[0])
	}
	if got := runsText(p.Runs); got != "line one line two" {
		t.Errorf("text = %q, want %q", got, "line one line two")
	}
}

func TestParseLinksKeepTextOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline link",
			input: "see [the docs](https://example.com) here",
			want:  "see the docs here",
		},
		{
			name:  "autolink keeps the URL as text",
			input: "go to <https://example.com>",
			want:  "go to https://example.com",
		},
		{
			name:  "image flattens to alt text",
			input: "shot: ![alt text](img.png)",
			want:  "shot: alt text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Parse([]byte(tt.input))
			if len(doc.Blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
			}
			p, ok := doc.Blocks[0].(Paragraph)
			if !ok {
				t.Fatalf("block = %#v, want Paragraph", doc.Blocks[0])
			}
			if got := runsText(p.Runs); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFencedCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLang string
		wantText string
	}{
		{
			name:     "fence with language hint",
			input:    "```go\nx := 1\n```\n",
			wantLang: "go",
			wantText: "x := 1\n",
		},
		{
			name:     "fence without hint",
			input:    "```\nplain\n```\n",
			wantLang: "",
			wantText: "plain\n",
		},
		{
			name:     "indented code has no hint",
			input:    "    tabbed\n",
			wantLang: "",
			wantText: "tabbed\n",
		},
		{
			name:     "multi line fence keeps interior newlines",
			input:    "```py\na = 1\n\nb = 2\n```\n",
			wantLang: "py",
			wantText: "a = 1\n\nb = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := Parse([]byte(tt.input))
			if len(doc.Blocks) != 1 {
				t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
			}
			cb, ok := doc.Blocks[0].(CodeBlock)
			if !ok {
				t.Fatalf("block = %#v, want CodeBlock", doc.Blocks[0])
			}
			if cb.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", cb.Language, tt.wantLang)
			}
			if cb.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", cb.Text, tt.wantText)
			}
		})
	}
}

func TestParseNestedList(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("- one\n  - two\n- three\n"))
	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	list, ok := doc.Blocks[0].(List)
	if !ok {
		t.Fatalf("block = %#v, want List", doc.Blocks[0])
	}
	if list.Ordered {
		t.Error("Ordered = true, want unordered")
	}
	if len(list.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(list.Items))
	}

	first := list.Items[0]
	if runsText(first.Runs) != "one" {
		t.Errorf("item 0 text = %q, want %q", runsText(first.Runs), "one")
	}
	if len(first.Children) != 1 {
		t.Fatalf("item 0 has %d children, want 1 nested list", len(first.Children))
	}
	nested, ok := first.Children[0].(List)
	if !ok {
		t.Fatalf("item 0 child = %#v, want List", first.Children[0])
	}
	if len(nested.Items) != 1 || runsText(nested.Items[0].Runs) != "two" {
		t.Errorf("nested list = %+v, want single item %q", nested.Items, "two")
	}

	if runsText(list.Items[1].Runs) != "three" {
		t.Errorf("item 1 text = %q, want %q", runsText(list.Items[1].Runs), "three")
	}
}

func TestParseOrderedListStart(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("3. a\n4. b\n"))
	list, ok := doc.Blocks[0].(List)
	if !ok {
		t.Fatalf("block = %#v, want List", doc.Blocks[0])
	}
	if !list.Ordered {
		t.Error("Ordered = false, want ordered")
	}
	if list.Start != 3 {
		t.Errorf("Start = %d, want 3", list.Start)
	}
	if len(list.Items) != 2 {
		t.Errorf("got %d items, want 2", len(list.Items))
	}
}

func TestParseQuote(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("> quoted text\n"))
	q, ok := doc.Blocks[0].(Quote)
	if !ok {
		t.Fatalf("block = %#v, want Quote", doc.Blocks[0])
	}
	if len(q.Children) != 1 {
		t.Fatalf("quote has %d children, want 1", len(q.Children))
	}
	p, ok := q.Children[0].(Paragraph)
	if !ok {
		t.Fatalf("quote child = %#v, want Paragraph", q.Children[0])
	}
	if runsText(p.Runs) != "quoted text" {
		t.Errorf("quote text = %q, want %q", runsText(p.Runs), "quoted text")
	}
}

func TestParseTable(t *testing.T) {
	t.Parallel()

	src := "| a | b |\n| --- | --- |\n| 1 | 2 |\n| 3 | 4 |\n"
	doc := Parse([]byte(src))
	tbl, ok := doc.Blocks[0].(Table)
	if !ok {
		t.Fatalf("block = %#v, want Table", doc.Blocks[0])
	}

	want := [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}
	if len(tbl.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(tbl.Rows), len(want))
	}
	for i, row := range tbl.Rows {
		if len(row) != len(want[i]) {
			t.Fatalf("row %d has %d cells %q, want %d", i, len(row), row, len(want[i]))
		}
		for j, cell := range row {
			if cell != want[i][j] {
				t.Errorf("cell %d,%d = %q, want %q", i, j, cell, want[i][j])
			}
		}
	}
}

func TestParseRule(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("before\n\n---\n\nafter\n"))
	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	if _, ok := doc.Blocks[1].(Rule); !ok {
		t.Errorf("block 1 = %#v, want Rule", doc.Blocks[1])
	}
}

func TestParseDropsRawHTMLBlocks(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte("<div>\nraw\n</div>\n\nkept text\n"))
	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks %#v, want only the paragraph", len(doc.Blocks), doc.Blocks)
	}
	p, ok := doc.Blocks[0].(Paragraph)
	if !ok || runsText(p.Runs) != "kept text" {
		t.Errorf("block = %#v, want Paragraph %q", doc.Blocks[0], "kept text")
	}
}

func TestParseEmptySource(t *testing.T) {
	t.Parallel()

	doc := Parse([]byte(""))
	if len(doc.Blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(doc.Blocks))
	}
	if doc.Title != "" {
		t.Errorf("Title = %q, want empty", doc.Title)
	}
}
