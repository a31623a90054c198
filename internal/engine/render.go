package engine

import (
	"errors"
	"fmt"
	"strings"

	"casetracker/internal/command"
	"casetracker/internal/config"
	"casetracker/internal/domain"
	"casetracker/internal/parser"
	"casetracker/internal/repo"
)

const indent = "  "

func countLine(n int) string {
	if n == 1 {
		return "Now you have 1 case in the list."
	}
	return fmt.Sprintf("Now you have %d cases in the list.", n)
}

func listHeader(n int, status command.ListStatus) string {
	qualifier := ""
	if status != command.ListAll {
		qualifier = status.String() + " "
	}
	switch n {
	case 0:
		return fmt.Sprintf("No %scases found.", qualifier)
	case 1:
		return fmt.Sprintf("Here is the 1 %scase in your list:", qualifier)
	default:
		return fmt.Sprintf("Here are the %d %scases in your list:", n, qualifier)
	}
}

func settingLabel(k command.SettingKind) string {
	switch k {
	case command.SettingDateInput:
		return "date input"
	case command.SettingDateOutput:
		return "date output"
	default:
		return "timestamp output"
	}
}

func dashed(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "--" + n
	}
	return strings.Join(out, " ")
}

func categoryNames() string {
	cats := domain.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}

// fail renders err with guidance on how to recover. id is the case the
// command addressed, if any.
func fail(err error, id string) Result {
	var (
		perr  *parser.Error
		ferr  *domain.InvalidFlagsError
		lines []string
	)
	switch {
	case errors.As(err, &perr):
		lines = []string{"OOPS!!! " + perr.Error()}
		if u := perr.Usage(); u != "" {
			lines = append(lines, "Usage: "+u)
		}
	case errors.As(err, &ferr):
		lines = []string{
			fmt.Sprintf("OOPS!!! %s. Nothing was changed.", ferr.Error()),
			"Valid flags for this case: " + dashed(ferr.Valid),
		}
	case errors.Is(err, repo.ErrNotFound):
		lines = []string{
			fmt.Sprintf("OOPS!!! No case with id %s.", strings.ToUpper(id)),
			"Use 'list' to see the ids of your cases.",
		}
	case errors.Is(err, domain.ErrAlreadyClosed):
		lines = []string{fmt.Sprintf("OOPS!!! Case %s is already closed.", strings.ToUpper(id))}
	case errors.Is(err, domain.ErrAlreadyOpen):
		lines = []string{fmt.Sprintf("OOPS!!! Case %s is already open.", strings.ToUpper(id))}
	case errors.Is(err, domain.ErrInvalidCategory):
		lines = []string{
			"OOPS!!! " + err.Error(),
			"Categories: " + categoryNames(),
		}
	case errors.Is(err, config.ErrInvalidPattern):
		lines = []string{
			"OOPS!!! " + err.Error(),
			"Patterns use strftime syntax, e.g. %Y-%m-%d or %d/%m/%Y %H:%M.",
		}
	default:
		lines = []string{"OOPS!!! " + err.Error()}
	}
	return Result{Lines: lines, Err: err}
}
