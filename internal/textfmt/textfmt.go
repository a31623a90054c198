// Package textfmt holds the fixed-width text helpers used to render case records.
package textfmt

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Ellipsis marks text that was cut short.
const Ellipsis = "..."

// Truncate shortens s to at most n columns, ending in an ellipsis when cut.
func Truncate(s string, n int) string {
	if n < len(Ellipsis)+1 {
		n = len(Ellipsis) + 1
	}
	return text.Snip(s, n, Ellipsis)
}

// Pad right-pads s with spaces to n columns. Longer strings are returned as is.
func Pad(s string, n int) string {
	return text.Pad(s, n, ' ')
}

// Wrap breaks s into lines of at most width columns on word boundaries.
// Words longer than width are split across lines with a trailing hyphen.
func Wrap(s string, width int) []string {
	if width < 2 {
		width = 2
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var (
		lines []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
	}
	for _, word := range words {
		for len(word) > width {
			flush()
			lines = append(lines, word[:width-1]+"-")
			word = word[width-1:]
		}
		if cur.Len() > 0 && cur.Len()+1+len(word) > width {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	flush()
	return lines
}

// Cap keeps at most max lines. When lines are dropped the last kept line
// ends in an ellipsis, shortened if needed to stay within width.
func Cap(lines []string, max, width int) []string {
	if max <= 0 || len(lines) <= max {
		return lines
	}
	out := append([]string(nil), lines[:max]...)
	last := out[max-1]
	if len(last)+len(Ellipsis) > width {
		cut := width - len(Ellipsis)
		if cut < 0 {
			cut = 0
		}
		if cut < len(last) {
			last = last[:cut]
		}
	}
	out[max-1] = last + Ellipsis
	return out
}

// Hang renders a labelled block: the first line follows "label: ", the
// rest are indented to line up under it.
func Hang(label string, labelWidth int, lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	out = append(out, Pad(label, labelWidth)+": "+lines[0])
	indent := strings.Repeat(" ", labelWidth+2)
	for _, l := range lines[1:] {
		out = append(out, indent+l)
	}
	return out
}
