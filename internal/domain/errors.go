package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyOpen     = errors.New("case is already open")
	ErrAlreadyClosed   = errors.New("case is already closed")
	ErrInvalidCategory = errors.New("invalid category")
	ErrMalformedRecord = errors.New("malformed case record")
)

// InvalidFlagsError lists every flag a case does not accept.
type InvalidFlagsError struct {
	Flags []string
	Valid []string
}

func (e *InvalidFlagsError) Error() string {
	return fmt.Sprintf("invalid flag(s): %s", joinFlags(e.Flags))
}

// ValueKindError reports a value of the wrong type for a field.
type ValueKindError struct {
	Flag string
	Want Kind
	Got  Kind
}

func (e *ValueKindError) Error() string {
	return fmt.Sprintf("--%s expects a %s, got %s", e.Flag, e.Want, e.Got)
}

func joinFlags(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "--" + n
	}
	return strings.Join(out, ", ")
}
