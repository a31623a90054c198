// Package command defines the closed set of commands a parsed input line can
// produce. Commands are plain values; the engine interprets them.
package command

import (
	"time"

	"casetracker/internal/domain"
)

// Command is implemented by every variant in this package.
type Command interface {
	// Keyword is the input keyword the command was parsed from.
	Keyword() string
	isCommand()
}

// ListStatus filters a listing by case status.
type ListStatus int

const (
	ListAll ListStatus = iota
	ListOpen
	ListClosed
)

func (s ListStatus) String() string {
	switch s {
	case ListOpen:
		return "open"
	case ListClosed:
		return "closed"
	default:
		return "all"
	}
}

// SettingKind names a configurable date/time pattern.
type SettingKind int

const (
	SettingDateInput SettingKind = iota + 1
	SettingDateOutput
	SettingTimestampOutput
)

func (k SettingKind) String() string {
	switch k {
	case SettingDateInput:
		return "dateinput"
	case SettingDateOutput:
		return "dateoutput"
	case SettingTimestampOutput:
		return "timestampoutput"
	default:
		return "unknown"
	}
}

type Add struct {
	Category string
	Title    string
	Date     time.Time
	Info     string
	Victim   string
	Officer  string
	Extra    domain.Changes
}

type List struct {
	Status  ListStatus
	Verbose bool
}

type Find struct {
	Term string
}

type Read struct {
	ID string
}

type Edit struct {
	ID      string
	Changes domain.Changes
}

// EditPrompt is an edit without flags: it shows what can be edited.
type EditPrompt struct {
	ID string
}

type Close struct {
	ID string
}

type Open struct {
	ID string
}

type Delete struct {
	ID string
}

type Setting struct {
	Kind    SettingKind
	Pattern string
}

type Help struct{}

type Bye struct{}

// Invalid carries the error of a line that could not be parsed.
type Invalid struct {
	Err error
}

func (Add) Keyword() string        { return "add" }
func (List) Keyword() string       { return "list" }
func (Find) Keyword() string       { return "find" }
func (Read) Keyword() string       { return "read" }
func (Edit) Keyword() string       { return "edit" }
func (EditPrompt) Keyword() string { return "edit" }
func (Close) Keyword() string      { return "close" }
func (Open) Keyword() string       { return "open" }
func (Delete) Keyword() string     { return "delete" }
func (Setting) Keyword() string    { return "setting" }
func (Help) Keyword() string       { return "help" }
func (Bye) Keyword() string        { return "bye" }
func (Invalid) Keyword() string    { return "" }

func (Add) isCommand()        {}
func (List) isCommand()       {}
func (Find) isCommand()       {}
func (Read) isCommand()       {}
func (Edit) isCommand()       {}
func (EditPrompt) isCommand() {}
func (Close) isCommand()      {}
func (Open) isCommand()       {}
func (Delete) isCommand()     {}
func (Setting) isCommand()    {}
func (Help) isCommand()       {}
func (Bye) isCommand()        {}
func (Invalid) isCommand()    {}

// Mutates reports whether executing c can change stored cases or settings.
func Mutates(c Command) bool {
	switch c.(type) {
	case Add, Edit, Close, Open, Delete, Setting:
		return true
	default:
		return false
	}
}
