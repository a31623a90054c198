package domain

import (
	"fmt"
	"strings"

	"casetracker/internal/textfmt"
)

// Rendering widths.
const (
	TitleWidth   = 40
	SummaryWidth = 100
	LabelWidth   = 20
	WrapWidth    = 60
	VerboseCap   = 5

	statusWidth   = 8
	categoryWidth = 10
	dateWidth     = 12
)

// Layouts are the Go time layouts used for display output.
type Layouts struct {
	Date      string
	Timestamp string
}

// DefaultLayouts render dates as dd/mm/yyyy.
var DefaultLayouts = Layouts{Date: "02/01/2006", Timestamp: "02/01/2006 15:04"}

// Summary shortens long text for one-line contexts.
func Summary(s string) string {
	return textfmt.Truncate(s, SummaryWidth)
}

// DisplayLine renders the one-line list entry of a case.
func (c *Case) DisplayLine(l Layouts) string {
	return fmt.Sprintf("%s %s %s %s %s",
		textfmt.Pad("["+c.StatusLabel()+"]", statusWidth),
		textfmt.Pad(string(c.category), categoryWidth),
		textfmt.Pad(c.id, len(c.id)+1),
		textfmt.Pad(c.date.Format(l.Date), dateWidth),
		textfmt.Truncate(c.title, TitleWidth),
	)
}

type labelled struct {
	label string
	value string
}

// displayFields lists the non-empty fields in read order: common fields,
// then variant fields, then info last.
func (c *Case) displayFields(l Layouts) []labelled {
	out := []labelled{
		{"Status", c.StatusLabel()},
		{"Category", string(c.category)},
		{"Title", c.title},
		{"Date", c.date.Format(l.Date)},
		{"Victim", c.victim},
		{"Officer", c.officer},
		{"Created", c.createdAt.Format(l.Timestamp)},
		{"Updated", c.updatedAt.Format(l.Timestamp)},
	}
	for _, f := range schemas[c.category] {
		out = append(out, labelled{f.Label, c.fields[f.Name].String()})
	}
	out = append(out, labelled{"Info", c.info})
	return out
}

func (c *Case) header() string {
	return fmt.Sprintf("==== CASE ID %s ====", c.id)
}

// ReadDisplay renders every field of the case, word-wrapped under its label.
// Empty fields are omitted.
func (c *Case) ReadDisplay(l Layouts) []string {
	return c.render(l, 0)
}

// VerboseDisplay is ReadDisplay with each field capped at VerboseCap lines.
func (c *Case) VerboseDisplay(l Layouts) []string {
	return c.render(l, VerboseCap)
}

func (c *Case) render(l Layouts, maxLines int) []string {
	lines := []string{c.header()}
	for _, f := range c.displayFields(l) {
		if strings.TrimSpace(f.value) == "" {
			continue
		}
		wrapped := textfmt.Wrap(f.value, WrapWidth)
		if maxLines > 0 {
			wrapped = textfmt.Cap(wrapped, maxLines, WrapWidth)
		}
		lines = append(lines, textfmt.Hang(f.label, LabelWidth, wrapped)...)
	}
	return lines
}
