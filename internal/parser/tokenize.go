package parser

import (
	"strings"
	"unicode"
)

type token struct {
	text string
	// literal tokens were quoted or escaped at their start and are never flags.
	literal bool
}

// tokenize splits s on whitespace. Double quotes group text verbatim and a
// backslash before '-' keeps the dash from starting a flag.
func tokenize(s string) ([]token, error) {
	var (
		toks    []token
		cur     strings.Builder
		inQuote bool
		started bool
		literal bool
	)
	emit := func() {
		if started {
			toks = append(toks, token{text: cur.String(), literal: literal})
		}
		cur.Reset()
		started, literal = false, false
	}
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if !started {
				literal = true
			}
			inQuote = !inQuote
			started = true
		case r == '\\' && i+1 < len(runes) && runes[i+1] == '-':
			if !started {
				literal = true
			}
			cur.WriteRune('-')
			started = true
			i++
		case unicode.IsSpace(r) && !inQuote:
			emit()
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, &Error{Kind: UnbalancedQuote}
	}
	emit()
	return toks, nil
}

func (t token) isFlag() bool {
	return !t.literal && strings.HasPrefix(t.text, "--")
}

// Flags is the tokenizer's view of --name value pairs, in input order.
type Flags struct {
	names  []string
	values map[string]string
}

// Names returns the flag names in the order they were given.
func (f Flags) Names() []string { return append([]string(nil), f.names...) }

// Get returns the raw value of a flag.
func (f Flags) Get(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Len is the number of flags.
func (f Flags) Len() int { return len(f.names) }

// split separates positional arguments (before the first flag) from flags.
// Each flag takes every following non-flag token as its value.
func split(toks []token) ([]string, Flags, error) {
	var pos []string
	flags := Flags{values: map[string]string{}}
	i := 0
	for ; i < len(toks) && !toks[i].isFlag(); i++ {
		pos = append(pos, toks[i].text)
	}
	for i < len(toks) {
		raw := toks[i].text
		name := strings.ToLower(strings.TrimPrefix(raw, "--"))
		if !validFlagName(name) {
			return nil, Flags{}, &Error{Kind: MalformedFlag, Value: raw}
		}
		if _, dup := flags.values[name]; dup {
			return nil, Flags{}, &Error{Kind: DuplicateFlag, Flag: name}
		}
		i++
		var parts []string
		for ; i < len(toks) && !toks[i].isFlag(); i++ {
			parts = append(parts, toks[i].text)
		}
		if len(parts) == 0 {
			return nil, Flags{}, &Error{Kind: MalformedFlag, Flag: name}
		}
		flags.names = append(flags.names, name)
		flags.values[name] = strings.Join(parts, " ")
	}
	return pos, flags, nil
}

func validFlagName(name string) bool {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}
