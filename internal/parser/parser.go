// Package parser turns raw input lines into commands.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"casetracker/internal/command"
	"casetracker/internal/domain"
	"casetracker/internal/validate"
)

// Length limits per flag. Flags not listed (info) are unbounded.
var maxLen = map[string]int{
	"title":    100,
	"victim":   60,
	"officer":  60,
	"category": 30,
	"keyword":  100,
	"value":    40,
}

const maxVariantTextLen = 100

// DateParser reads dates typed by the user.
type DateParser interface {
	ParseDate(s string) (time.Time, error)
	DateInputPattern() string
}

// Parser is stateless apart from the date pattern source, which is read on
// every parse so setting changes apply to the next line.
type Parser struct {
	Dates DateParser
}

func New(dates DateParser) *Parser {
	return &Parser{Dates: dates}
}

type grammar struct {
	caseID   bool
	required []string
	optional []string
	// openFlags skips the allowed-flag check; edit validates names against the record.
	openFlags bool
}

type args struct {
	id    string
	flags Flags
}

// Parse interprets one input line. Failures are *Error values.
func (p *Parser) Parse(line string) (command.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, &Error{Kind: EmptyInput}
	}
	keyword, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		keyword, rest = line[:i], line[i+1:]
	}
	keyword = strings.ToLower(keyword)
	switch keyword {
	case "list":
		return p.parseList(rest)
	case "add":
		return p.parseAdd(rest)
	case "read":
		a, err := p.args(keyword, rest, grammar{caseID: true})
		if err != nil {
			return nil, err
		}
		return command.Read{ID: a.id}, nil
	case "find":
		return p.parseFind(rest)
	case "edit":
		return p.parseEdit(rest)
	case "close":
		a, err := p.args(keyword, rest, grammar{caseID: true})
		if err != nil {
			return nil, err
		}
		return command.Close{ID: a.id}, nil
	case "open":
		a, err := p.args(keyword, rest, grammar{caseID: true})
		if err != nil {
			return nil, err
		}
		return command.Open{ID: a.id}, nil
	case "delete":
		a, err := p.args(keyword, rest, grammar{caseID: true})
		if err != nil {
			return nil, err
		}
		return command.Delete{ID: a.id}, nil
	case "setting":
		return p.parseSetting(rest)
	case "help":
		if _, err := p.args(keyword, rest, grammar{}); err != nil {
			return nil, err
		}
		return command.Help{}, nil
	case "bye":
		if _, err := p.args(keyword, rest, grammar{}); err != nil {
			return nil, err
		}
		return command.Bye{}, nil
	default:
		return nil, &Error{Kind: UnknownCommand, Value: keyword}
	}
}

// args runs the shared checks: tokenizing, positional case id, allowed and
// required flags, character set and length limits.
func (p *Parser) args(cmd, rest string, g grammar) (args, error) {
	fail := func(err error) (args, error) {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Command = cmd
		}
		return args{}, err
	}
	toks, err := tokenize(rest)
	if err != nil {
		return fail(err)
	}
	pos, flags, err := split(toks)
	if err != nil {
		return fail(err)
	}
	var a args
	a.flags = flags
	switch {
	case g.caseID && len(pos) == 0:
		return fail(&Error{Kind: MissingCaseID})
	case g.caseID && len(pos) > 1:
		return fail(&Error{Kind: UnexpectedArgument, Value: pos[1]})
	case !g.caseID && len(pos) > 0:
		return fail(&Error{Kind: UnexpectedArgument, Value: pos[0]})
	}
	if g.caseID {
		if !validate.IsASCIIPrintable(pos[0]) || !validate.IsValidCaseID(pos[0]) {
			return fail(&Error{Kind: InvalidCaseID, Value: pos[0]})
		}
		a.id = strings.ToUpper(pos[0])
	}
	names := flags.Names()
	if !g.openFlags {
		allowed := append(append([]string(nil), g.required...), g.optional...)
		if bad := validate.DisallowedFlags(names, allowed); len(bad) > 0 {
			return fail(&Error{Kind: InvalidFlag, Flags: bad})
		}
	}
	if missing := validate.MissingFlags(names, g.required); len(missing) > 0 {
		return fail(&Error{Kind: MissingFlag, Flags: missing})
	}
	for _, name := range names {
		v, _ := flags.Get(name)
		if !validate.IsASCIIPrintable(v) {
			return fail(&Error{Kind: DisallowedCharacter, Flag: name})
		}
		if limit := lengthLimit(name); limit > 0 && len(v) > limit {
			return fail(&Error{Kind: TooLong, Flag: name, Value: v,
				Detail: fmt.Sprintf("%d characters, at most %d allowed", len(v), limit)})
		}
	}
	return a, nil
}

func lengthLimit(name string) int {
	if n, ok := maxLen[name]; ok {
		return n
	}
	if f, ok := domain.LookupField(name); ok && f.Kind == domain.KindText && f.Name != domain.FieldInfo {
		return maxVariantTextLen
	}
	return 0
}

func (p *Parser) parseList(rest string) (command.Command, error) {
	a, err := p.args("list", rest, grammar{optional: []string{"status", "mode"}})
	if err != nil {
		return nil, err
	}
	var c command.List
	if v, ok := a.flags.Get("status"); ok {
		switch strings.ToLower(v) {
		case "all":
			c.Status = command.ListAll
		case "open":
			c.Status = command.ListOpen
		case "closed":
			c.Status = command.ListClosed
		default:
			return nil, &Error{Kind: InvalidValue, Command: "list", Flag: "status", Value: v, Detail: "expected open, closed or all"}
		}
	}
	if v, ok := a.flags.Get("mode"); ok {
		switch strings.ToLower(v) {
		case "summary":
		case "verbose":
			c.Verbose = true
		default:
			return nil, &Error{Kind: InvalidValue, Command: "list", Flag: "mode", Value: v, Detail: "expected summary or verbose"}
		}
	}
	return c, nil
}

func (p *Parser) parseAdd(rest string) (command.Command, error) {
	g := grammar{
		required: []string{"category", "title", "date", "info"},
		optional: append([]string{"victim", "officer"}, domain.VariantFieldNames()...),
	}
	a, err := p.args("add", rest, g)
	if err != nil {
		return nil, err
	}
	for _, name := range g.required {
		if err := notBlank("add", name, a.flags); err != nil {
			return nil, err
		}
	}
	c := command.Add{Extra: domain.Changes{}}
	c.Category, _ = a.flags.Get("category")
	c.Title, _ = a.flags.Get("title")
	c.Info, _ = a.flags.Get("info")
	c.Victim, _ = a.flags.Get("victim")
	c.Officer, _ = a.flags.Get("officer")
	raw, _ := a.flags.Get("date")
	date, err := p.coerce("add", domain.FieldDate, raw)
	if err != nil {
		return nil, err
	}
	c.Date = date.Time()
	for _, name := range a.flags.Names() {
		if contains(g.required, name) || name == "victim" || name == "officer" {
			continue
		}
		raw, _ := a.flags.Get(name)
		v, err := p.coerce("add", name, raw)
		if err != nil {
			return nil, err
		}
		c.Extra[name] = v
	}
	return c, nil
}

func (p *Parser) parseFind(rest string) (command.Command, error) {
	a, err := p.args("find", rest, grammar{required: []string{"keyword"}})
	if err != nil {
		return nil, err
	}
	if err := notBlank("find", "keyword", a.flags); err != nil {
		return nil, err
	}
	kw, _ := a.flags.Get("keyword")
	return command.Find{Term: kw}, nil
}

func (p *Parser) parseEdit(rest string) (command.Command, error) {
	a, err := p.args("edit", rest, grammar{caseID: true, openFlags: true})
	if err != nil {
		return nil, err
	}
	if a.flags.Len() == 0 {
		return command.EditPrompt{ID: a.id}, nil
	}
	changes := domain.Changes{}
	for _, name := range a.flags.Names() {
		raw, _ := a.flags.Get(name)
		if name == domain.FieldTitle || name == domain.FieldInfo {
			if err := notBlank("edit", name, a.flags); err != nil {
				return nil, err
			}
		}
		v, err := p.coerce("edit", name, raw)
		if err != nil {
			return nil, err
		}
		changes[name] = v
	}
	return command.Edit{ID: a.id, Changes: changes}, nil
}

func (p *Parser) parseSetting(rest string) (command.Command, error) {
	a, err := p.args("setting", rest, grammar{required: []string{"type", "value"}})
	if err != nil {
		return nil, err
	}
	kindRaw, _ := a.flags.Get("type")
	var kind command.SettingKind
	switch strings.ToLower(kindRaw) {
	case "dateinput":
		kind = command.SettingDateInput
	case "dateoutput":
		kind = command.SettingDateOutput
	case "timestampoutput":
		kind = command.SettingTimestampOutput
	default:
		return nil, &Error{Kind: InvalidValue, Command: "setting", Flag: "type", Value: kindRaw,
			Detail: "expected dateinput, dateoutput or timestampoutput"}
	}
	pattern, _ := a.flags.Get("value")
	return command.Setting{Kind: kind, Pattern: pattern}, nil
}

// coerce converts a raw flag value to the kind of the named field. Names
// unknown to every category stay text; the record decides whether they apply.
func (p *Parser) coerce(cmd, name, raw string) (domain.Value, error) {
	spec, ok := domain.LookupField(name)
	if !ok {
		return domain.TextValue(raw), nil
	}
	switch spec.Kind {
	case domain.KindDate:
		t, err := p.Dates.ParseDate(raw)
		if err != nil {
			return domain.Null, &Error{Kind: InvalidValue, Command: cmd, Flag: name, Value: raw,
				Detail: fmt.Sprintf("dates must match the pattern %s", p.Dates.DateInputPattern())}
		}
		return domain.DateValue(t), nil
	case domain.KindCount:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Null, &Error{Kind: InvalidValue, Command: cmd, Flag: name, Value: raw,
				Detail: "expected a whole number"}
		}
		if n < 0 {
			return domain.Null, &Error{Kind: NegativeValue, Command: cmd, Flag: name, Value: raw}
		}
		return domain.CountValue(n), nil
	default:
		return domain.TextValue(raw), nil
	}
}

func notBlank(cmd, name string, flags Flags) error {
	v, _ := flags.Get(name)
	if strings.TrimSpace(v) == "" {
		return &Error{Kind: InvalidValue, Command: cmd, Flag: name, Value: v, Detail: "must not be empty"}
	}
	return nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
