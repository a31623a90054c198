package parser

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why a line was rejected.
type ErrorKind int

const (
	EmptyInput ErrorKind = iota + 1
	UnknownCommand
	MalformedFlag
	UnbalancedQuote
	DuplicateFlag
	MissingFlag
	InvalidFlag
	MissingCaseID
	InvalidCaseID
	UnexpectedArgument
	InvalidValue
	NegativeValue
	DisallowedCharacter
	TooLong
)

var kindNames = map[ErrorKind]string{
	EmptyInput:          "empty input",
	UnknownCommand:      "unknown command",
	MalformedFlag:       "malformed flag",
	UnbalancedQuote:     "unbalanced quote",
	DuplicateFlag:       "duplicate flag",
	MissingFlag:         "missing flag",
	InvalidFlag:         "invalid flag",
	MissingCaseID:       "missing case id",
	InvalidCaseID:       "invalid case id",
	UnexpectedArgument:  "unexpected argument",
	InvalidValue:        "invalid value",
	NegativeValue:       "negative value",
	DisallowedCharacter: "disallowed character",
	TooLong:             "value too long",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "parse error"
}

// Error is a structured parse failure. Command is the keyword being parsed,
// when one was recognised.
type Error struct {
	Kind    ErrorKind
	Command string
	Flag    string
	Flags   []string
	Value   string
	Detail  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "please enter a command; type 'help' to see them all"
	case UnknownCommand:
		return fmt.Sprintf("unknown command %q; type 'help' to see them all", e.Value)
	case MalformedFlag:
		if e.Flag != "" {
			return fmt.Sprintf("flag --%s must be followed by a value", e.Flag)
		}
		return fmt.Sprintf("malformed flag %q", e.Value)
	case UnbalancedQuote:
		return "a quoted value is missing its closing quote"
	case DuplicateFlag:
		return fmt.Sprintf("flag --%s was given more than once", e.Flag)
	case MissingFlag:
		return fmt.Sprintf("missing required flag(s): %s", dashed(e.Flags))
	case InvalidFlag:
		return fmt.Sprintf("invalid flag(s) for %s: %s", e.Command, dashed(e.Flags))
	case MissingCaseID:
		return fmt.Sprintf("%s needs a case id", e.Command)
	case InvalidCaseID:
		return fmt.Sprintf("%q is not a valid case id; ids are 6 hexadecimal characters", e.Value)
	case UnexpectedArgument:
		return fmt.Sprintf("unexpected argument %q for %s", e.Value, e.Command)
	case InvalidValue:
		return fmt.Sprintf("invalid value %q for --%s: %s", e.Value, e.Flag, e.Detail)
	case NegativeValue:
		return fmt.Sprintf("--%s cannot be negative (got %s)", e.Flag, e.Value)
	case DisallowedCharacter:
		where := "input"
		if e.Flag != "" {
			where = "--" + e.Flag
		}
		return fmt.Sprintf("%s may only contain printable ASCII characters other than '|'", where)
	case TooLong:
		return fmt.Sprintf("--%s is too long: %s", e.Flag, e.Detail)
	default:
		return e.Kind.String()
	}
}

// Usage returns the usage line of the command the error relates to, if any.
func (e *Error) Usage() string {
	return Usage(e.Command)
}

func dashed(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "--" + n
	}
	return strings.Join(out, ", ")
}
