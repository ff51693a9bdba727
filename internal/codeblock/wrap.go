package codeblock

// Wrap rewraps token lines so no output line exceeds maxChars characters.
// Tokens longer than the budget are split mid-token, each piece keeping the
// original colour. Widths below one character are clamped to one so every
// line can make progress. Line order and character order are preserved, and
// no characters are added or dropped.
func Wrap(lines []Line, maxChars int) []Line {
	if maxChars < 1 {
		maxChars = 1
	}
	var out []Line
	for _, line := range lines {
		out = append(out, wrapLine(line, maxChars)...)
	}
	return out
}

// wrapLine greedily fills display lines from one logical line. A line with
// no segments still yields one empty display line so blank source lines keep
// their vertical space.
func wrapLine(line Line, maxChars int) []Line {
	if len(line) == 0 {
		return []Line{{}}
	}

	var out []Line
	var cur Line
	used := 0
	flush := func() {
		out = append(out, cur)
		cur = nil
		used = 0
	}

	for _, seg := range line {
		rest := []rune(seg.Text)
		if len(rest) == 0 {
			cur = append(cur, seg)
			continue
		}
		for len(rest) > 0 {
			room := maxChars - used
			if room <= 0 {
				flush()
				continue
			}
			if len(rest) <= room {
				cur = append(cur, Segment{Colour: seg.Colour, Text: string(rest)})
				used += len(rest)
				break
			}
			cur = append(cur, Segment{Colour: seg.Colour, Text: string(rest[:room])})
			rest = rest[room:]
			flush()
		}
	}
	out = append(out, cur)
	return out
}
