package domain

import (
	"sort"
	"strconv"
	"time"
)

// Value is a typed field value. The zero Value is null.
type Value struct {
	kind Kind
	text string
	n    int
	date time.Time
}

// Null is the absent value.
var Null = Value{}

func TextValue(s string) Value    { return Value{kind: KindText, text: s} }
func CountValue(n int) Value      { return Value{kind: KindCount, n: n} }
func DateValue(t time.Time) Value { return Value{kind: KindDate, date: dateOnly(t)} }
func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNull() bool      { return v.kind == KindNull }
func (v Value) Text() string      { return v.text }
func (v Value) Count() int        { return v.n }
func (v Value) Time() time.Time   { return v.date }

// String renders the value the way it is stored: empty for null.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindCount:
		return strconv.Itoa(v.n)
	case KindDate:
		return v.date.Format(SaveDateLayout)
	default:
		return ""
	}
}

// Changes maps flag names to new values for an edit.
type Changes map[string]Value

// Names returns the flag names in sorted order.
func (c Changes) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
