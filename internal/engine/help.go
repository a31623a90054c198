package engine

import "casetracker/internal/parser"

func helpLines(dateInput string) []string {
	lines := []string{"Here are the commands you can use:"}
	for _, k := range parser.Keywords() {
		lines = append(lines, indent+parser.Usage(k))
	}
	return append(lines,
		"Categories: "+categoryNames(),
		"Dates are typed as "+dateInput+"; change this with 'setting --type dateinput'.",
		"Values containing spaces can be quoted, and \\- keeps a leading dash literal.",
	)
}
