package engine

import (
	"fmt"
	"io"
	"log/slog"

	"casetracker/internal/command"
	"casetracker/internal/config"
	"casetracker/internal/domain"
	"casetracker/internal/events"
	"casetracker/internal/parser"
	"casetracker/internal/repo"
)

// Result is the outcome of one command. When Err is set, Lines render it.
type Result struct {
	Lines   []string
	Err     error
	Exit    bool
	Mutated bool
}

type Engine struct {
	Repo     *repo.Repo
	Settings *config.Settings
	Events   events.Writer
	Logger   *slog.Logger

	parser *parser.Parser
}

func New(r *repo.Repo, s *config.Settings) *Engine {
	return &Engine{
		Repo:     r,
		Settings: s,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Parse reads a line with the current date input pattern. Parse failures
// come back as command.Invalid.
func (e *Engine) Parse(line string) command.Command {
	if e.parser == nil {
		e.parser = parser.New(e.Settings)
	}
	cmd, err := e.parser.Parse(line)
	if err != nil {
		return command.Invalid{Err: err}
	}
	return cmd
}

// Run parses and executes one input line.
func (e *Engine) Run(line string) Result {
	return e.Execute(e.Parse(line))
}

// Execute interprets cmd against the repository.
func (e *Engine) Execute(cmd command.Command) Result {
	e.logger().Debug("execute", "command", fmt.Sprintf("%T", cmd))
	switch c := cmd.(type) {
	case command.Add:
		return e.add(c)
	case command.List:
		return e.list(c)
	case command.Find:
		return e.find(c)
	case command.Read:
		return e.read(c)
	case command.Edit:
		return e.edit(c)
	case command.EditPrompt:
		return e.editPrompt(c)
	case command.Close:
		return e.close(c)
	case command.Open:
		return e.open(c)
	case command.Delete:
		return e.delete(c)
	case command.Setting:
		return e.setting(c)
	case command.Help:
		return Result{Lines: helpLines(e.Settings.DateInputPattern())}
	case command.Bye:
		return Result{Lines: []string{"Bye. See you next time!"}, Exit: true}
	case command.Invalid:
		return fail(c.Err, "")
	default:
		return fail(fmt.Errorf("unsupported command %T", cmd), "")
	}
}

func (e *Engine) record(evtType, caseID string, payload events.EventPayload) {
	if err := e.Events.Append(evtType, caseID, payload); err != nil {
		e.logger().Warn("append event", "type", evtType, "case", caseID, "err", err)
	}
}

func (e *Engine) add(c command.Add) Result {
	created, err := e.Repo.Create(c.Category, domain.Details{
		Title:   c.Title,
		Date:    c.Date,
		Info:    c.Info,
		Victim:  c.Victim,
		Officer: c.Officer,
	}, c.Extra)
	if err != nil {
		return fail(err, "")
	}
	e.record(events.CaseAdded, created.ID(), events.EventPayload{"category": string(created.Category())})
	return Result{
		Lines: []string{
			"Got it. I've added this case:",
			indent + created.DisplayLine(e.Settings.Layouts()),
			countLine(e.Repo.Len()),
		},
		Mutated: true,
	}
}

func (e *Engine) list(c command.List) Result {
	cases := e.Repo.List(c.Status)
	lines := []string{listHeader(len(cases), c.Status)}
	layouts := e.Settings.Layouts()
	for i, cs := range cases {
		if c.Verbose {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, cs.VerboseDisplay(layouts)...)
			continue
		}
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, cs.DisplayLine(layouts)))
	}
	return Result{Lines: lines}
}

func (e *Engine) find(c command.Find) Result {
	cases := e.Repo.Find(c.Term)
	if len(cases) == 0 {
		return Result{Lines: []string{fmt.Sprintf("No cases match %q.", c.Term)}}
	}
	lines := []string{fmt.Sprintf("Here are the matching cases for %q:", c.Term)}
	layouts := e.Settings.Layouts()
	for i, cs := range cases {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, cs.DisplayLine(layouts)),
			indent+domain.Summary(cs.Info()))
	}
	return Result{Lines: lines}
}

func (e *Engine) read(c command.Read) Result {
	cs, err := e.Repo.Get(c.ID)
	if err != nil {
		return fail(err, c.ID)
	}
	return Result{Lines: cs.ReadDisplay(e.Settings.Layouts())}
}

func (e *Engine) edit(c command.Edit) Result {
	cs, err := e.Repo.Edit(c.ID, c.Changes)
	if err != nil {
		return fail(err, c.ID)
	}
	e.record(events.CaseEdited, cs.ID(), events.EventPayload{"flags": c.Changes.Names()})
	lines := []string{fmt.Sprintf("Case %s updated:", cs.ID())}
	return Result{Lines: append(lines, cs.ReadDisplay(e.Settings.Layouts())...), Mutated: true}
}

func (e *Engine) editPrompt(c command.EditPrompt) Result {
	cs, err := e.Repo.Get(c.ID)
	if err != nil {
		return fail(err, c.ID)
	}
	return Result{Lines: []string{
		fmt.Sprintf("Case %s (%s) can be edited with:", cs.ID(), cs.Category()),
		indent + dashed(cs.ValidEditFlags()),
		"Usage: " + parser.Usage("edit"),
	}}
}

func (e *Engine) close(c command.Close) Result {
	cs, err := e.Repo.Close(c.ID)
	if err != nil {
		return fail(err, c.ID)
	}
	e.record(events.CaseClosed, cs.ID(), nil)
	return Result{Lines: []string{
		"Nice! I've marked this case as closed:",
		indent + cs.DisplayLine(e.Settings.Layouts()),
	}, Mutated: true}
}

func (e *Engine) open(c command.Open) Result {
	cs, err := e.Repo.Reopen(c.ID)
	if err != nil {
		return fail(err, c.ID)
	}
	e.record(events.CaseReopened, cs.ID(), nil)
	return Result{Lines: []string{
		"OK, I've reopened this case:",
		indent + cs.DisplayLine(e.Settings.Layouts()),
	}, Mutated: true}
}

func (e *Engine) delete(c command.Delete) Result {
	cs, err := e.Repo.Delete(c.ID)
	if err != nil {
		return fail(err, c.ID)
	}
	e.record(events.CaseDeleted, cs.ID(), nil)
	return Result{Lines: []string{
		"Noted. I've deleted this case:",
		indent + cs.DisplayLine(e.Settings.Layouts()),
		countLine(e.Repo.Len()),
	}, Mutated: true}
}

func (e *Engine) setting(c command.Setting) Result {
	var (
		set      func(string) error
		previous string
	)
	switch c.Kind {
	case command.SettingDateInput:
		set, previous = e.Settings.SetDateInput, e.Settings.DateInputPattern()
	case command.SettingDateOutput:
		set, previous = e.Settings.SetDateOutput, e.Settings.DateOutputPattern()
	case command.SettingTimestampOutput:
		set, previous = e.Settings.SetTimestampOutput, e.Settings.TimestampOutputPattern()
	default:
		return fail(fmt.Errorf("unknown setting %d", c.Kind), "")
	}
	if err := set(c.Pattern); err != nil {
		res := fail(err, "")
		res.Lines = append(res.Lines, fmt.Sprintf("The %s pattern is still %s.", settingLabel(c.Kind), previous))
		return res
	}
	e.logger().Info("setting changed", "type", c.Kind.String(), "from", previous, "to", c.Pattern)
	e.record(events.SettingChanged, "", events.EventPayload{"type": c.Kind.String(), "from": previous, "to": c.Pattern})
	return Result{Lines: []string{
		fmt.Sprintf("The %s pattern is now %s.", settingLabel(c.Kind), c.Pattern),
	}, Mutated: true}
}
