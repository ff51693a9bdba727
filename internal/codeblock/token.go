package codeblock

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	enry "github.com/go-enry/go-enry/v2"
)

// tabWidth is the number of spaces a tab expands to before wrapping.
const tabWidth = 4

// Segment is a run of characters sharing one colour. The zero Colour means
// the run carries no highlight and inherits the block's text colour.
type Segment struct {
	Colour chroma.Colour
	Text   string
}

// Line is an ordered sequence of segments with no newlines inside. The same
// type describes both logical source lines and wrapped display lines; a
// wrapped line is simply a line that fits a width budget.
type Line []Segment

// Text returns the concatenated segment texts.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Len returns the number of characters on the line.
func (l Line) Len() int {
	n := 0
	for _, s := range l {
		n += len([]rune(s.Text))
	}
	return n
}

// Tokenizer splits code into coloured line segments. Implementations never
// fail: every input produces at least one line, and unknown languages
// degrade to uncoloured text rather than erroring.
type Tokenizer interface {
	Tokenize(code, language string) []Line
}

var (
	_ Tokenizer = (*ChromaTokenizer)(nil)
	_ Tokenizer = PlainTokenizer{}
)

// ChromaTokenizer highlights code with Chroma lexers against a fixed style.
// The style is resolved once at construction so token categories map to the
// same colours for the lifetime of the tokenizer.
type ChromaTokenizer struct {
	style *chroma.Style
}

// NewChromaTokenizer returns a tokenizer colouring against the named Chroma
// style. Unknown names fall back to Chroma's default style.
func NewChromaTokenizer(theme string) *ChromaTokenizer {
	return &ChromaTokenizer{style: styles.Get(theme)}
}

// Tokenize splits code into coloured lines. The language hint selects the
// lexer; when it names no known lexer the content is classified, and when
// classification fails too the text comes back as uncoloured plain lines.
func (t *ChromaTokenizer) Tokenize(code, language string) []Line {
	code = normalizeCode(code)
	if code == "" {
		return emptyBlock()
	}

	lexer := chroma.Coalesce(resolveLexer(language, code))
	tokens, err := chroma.Tokenise(lexer, nil, code)
	if err != nil {
		return plainLines(code)
	}

	// Lexers with EnsureNL append a newline to the token stream; cap the
	// output at the source's own line count so no phantom blank line appears.
	want := strings.Count(code, "\n") + 1

	// Tokens matching the style's base text colour stay unset so the block's
	// own text colour applies.
	base := t.style.Get(chroma.Text).Colour

	var lines []Line
	var cur Line
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		colour := t.style.Get(tok.Type).Colour
		if !colour.IsSet() || colour == base {
			colour = 0
		}
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part != "" {
				cur = append(cur, Segment{Colour: colour, Text: part})
			}
		}
	}
	lines = append(lines, cur)
	if len(lines) > want {
		lines = lines[:want]
	}
	return lines
}

// PlainTokenizer emits one uncoloured segment per source line. It is the
// guaranteed fallback when highlighting is disabled or unavailable.
type PlainTokenizer struct{}

// Tokenize splits normalized code on newlines, ignoring the language hint.
func (PlainTokenizer) Tokenize(code, _ string) []Line {
	code = normalizeCode(code)
	if code == "" {
		return emptyBlock()
	}
	return plainLines(code)
}

func plainLines(code string) []Line {
	raw := strings.Split(code, "\n")
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = Line{{Text: s}}
	}
	return lines
}

// normalizeCode rewrites line endings to \n, expands tabs, and strips
// trailing newlines so the last source line does not paint as an extra
// blank display line.
func normalizeCode(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")
	code = strings.ReplaceAll(code, "\t", strings.Repeat(" ", tabWidth))
	return strings.TrimRight(code, "\n")
}

// emptyBlock is the canonical shape of an empty code block: one line holding
// one empty segment, so layout still produces a visible block.
func emptyBlock() []Line {
	return []Line{{Segment{}}}
}

// resolveLexer picks a lexer for the given hint and content. The hint wins
// when it names a known lexer; otherwise go-enry's Bayesian classifier gets
// a look at the content (it recognises languages Chroma's own Analyse
// misses), then Chroma's Analyse, then the catch-all fallback.
func resolveLexer(language, code string) chroma.Lexer {
	if language != "" {
		if l := lexers.Get(language); l != nil {
			return l
		}
	}
	if name, safe := enry.GetLanguageByClassifier([]byte(code), nil); safe {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}
