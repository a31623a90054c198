package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	lineIndent = "    "
	Divider    = lineIndent + "____________________________________________________________"
)

// Printer frames command output between dividers, one indented line at a
// time.
type Printer struct {
	out      io.Writer
	errColor *color.Color
	dimColor *color.Color
}

func New(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		errColor: color.New(color.FgRed, color.Bold),
		dimColor: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.errColor, p.dimColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Show prints lines as a normal response.
func (p *Printer) Show(lines ...string) {
	p.block(lines, nil)
}

// ShowError prints lines as an error response.
func (p *Printer) ShowError(lines ...string) {
	p.block(lines, p.errColor)
}

func (p *Printer) block(lines []string, c *color.Color) {
	var b strings.Builder
	b.WriteString(p.dimColor.Sprint(Divider) + "\n")
	for _, l := range lines {
		if l == "" {
			b.WriteString("\n")
			continue
		}
		if c != nil {
			l = c.Sprint(l)
		}
		b.WriteString(lineIndent + l + "\n")
	}
	b.WriteString(p.dimColor.Sprint(Divider) + "\n")
	fmt.Fprint(p.out, b.String())
}

// Welcome prints the greeting shown when the shell starts.
func (p *Printer) Welcome(count int) {
	p.Show(
		"Hello! I'm your case tracker.",
		fmt.Sprintf("You have %d case(s) on record. Type 'help' to see what I can do.", count),
	)
}
