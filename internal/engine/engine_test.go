package engine_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casetracker/internal/config"
	"casetracker/internal/domain"
	"casetracker/internal/engine"
	"casetracker/internal/events"
	"casetracker/internal/parser"
	"casetracker/internal/repo"
)

type testEnv struct {
	Engine  *engine.Engine
	Repo    *repo.Repo
	Journal *bytes.Buffer
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 10, 14, 9, 30, 0, 0, time.Local) }
	seq := 0
	r := &repo.Repo{
		Now: now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("%06X", seq)
		},
	}
	journal := &bytes.Buffer{}
	eng := engine.New(r, config.DefaultSettings())
	eng.Events = events.Writer{W: journal, Now: now}
	return testEnv{Engine: eng, Repo: r, Journal: journal}
}

func (env testEnv) run(t *testing.T, line string) engine.Result {
	t.Helper()
	res := env.Engine.Run(line)
	require.NoError(t, res.Err, "%s: %v", line, res.Lines)
	return res
}

const addTheft = `add --category theft --title Shop Theft --date 2025-10-14 --info Stolen electronics --stolen-value 1200`

func TestAddThenList(t *testing.T) {
	env := newTestEnv(t)
	res := env.run(t, addTheft)
	assert.True(t, res.Mutated)
	assert.Equal(t, "Now you have 1 case in the list.", res.Lines[len(res.Lines)-1])

	res = env.run(t, "list")
	assert.False(t, res.Mutated)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Here is the 1 case in your list:", res.Lines[0])
	for _, want := range []string{"[Open]", "Theft", "000001", "14/10/2025", "Shop Theft"} {
		assert.Contains(t, res.Lines[1], want)
	}
}

func TestListEmptyAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, []string{"No cases found."}, env.run(t, "list").Lines)

	env.run(t, addTheft)
	env.run(t, addTheft)
	env.run(t, "close 000002")

	res := env.run(t, "list --status closed")
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "Here is the 1 closed case in your list:", res.Lines[0])
	assert.Contains(t, res.Lines[1], "[Closed]")

	assert.Equal(t, "Here are the 2 cases in your list:", env.run(t, "list").Lines[0])
	assert.Equal(t, "Here is the 1 open case in your list:", env.run(t, "list --status open").Lines[0])
}

func TestListVerbose(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	res := env.run(t, "list --mode verbose")
	assert.Contains(t, res.Lines, "==== CASE ID 000001 ====")
}

func TestEditUnknownFlagChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)

	res := env.Engine.Run(`edit 000001 --title "New" --unknownflag x`)
	var flagsErr *domain.InvalidFlagsError
	require.True(t, errors.As(res.Err, &flagsErr))
	assert.Equal(t, []string{"unknownflag"}, flagsErr.Flags)
	assert.False(t, res.Mutated)
	assert.Contains(t, res.Lines[0], "--unknownflag")
	assert.Contains(t, res.Lines[1], "--stolen-value")

	c, err := env.Repo.Get("000001")
	require.NoError(t, err)
	assert.Equal(t, "Shop Theft", c.Title())
}

func TestEdit(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	res := env.run(t, `edit 000001 --title "Bike Theft" --stolen-object bicycle`)
	assert.True(t, res.Mutated)
	assert.Equal(t, "Case 000001 updated:", res.Lines[0])

	c, err := env.Repo.Get("000001")
	require.NoError(t, err)
	assert.Equal(t, "Bike Theft", c.Title())
	assert.Equal(t, "bicycle", c.Field("stolen-object").Text())
	assert.Contains(t, env.Journal.String(), `"type":"case.edited"`)
}

func TestEditPrompt(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	res := env.run(t, "edit 000001")
	assert.False(t, res.Mutated)
	assert.Equal(t, "  --title --date --info --victim --officer --stolen-object --stolen-value", res.Lines[1])
	assert.Equal(t, "Usage: "+parser.Usage("edit"), res.Lines[2])
}

func TestDeleteThenRead(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	res := env.run(t, "delete 000001")
	assert.True(t, res.Mutated)
	assert.Equal(t, "Now you have 0 cases in the list.", res.Lines[len(res.Lines)-1])

	res = env.Engine.Run("read 000001")
	assert.ErrorIs(t, res.Err, repo.ErrNotFound)
	assert.Equal(t, "OOPS!!! No case with id 000001.", res.Lines[0])

	entries := env.Repo.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Case.IsDeleted())
}

func TestCloseOpenTransitions(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	env.run(t, "close 000001")

	res := env.Engine.Run("close 000001")
	assert.ErrorIs(t, res.Err, domain.ErrAlreadyClosed)
	assert.Equal(t, []string{"OOPS!!! Case 000001 is already closed."}, res.Lines)

	env.run(t, "open 000001")
	res = env.Engine.Run("open 000001")
	assert.ErrorIs(t, res.Err, domain.ErrAlreadyOpen)
	assert.False(t, res.Mutated)

	res = env.Engine.Run("close abcdef")
	assert.ErrorIs(t, res.Err, repo.ErrNotFound)
	assert.Equal(t, "OOPS!!! No case with id ABCDEF.", res.Lines[0])
}

func TestAddInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	res := env.Engine.Run(`add --category piracy --title t --date 2025-10-14 --info i`)
	assert.ErrorIs(t, res.Err, domain.ErrInvalidCategory)
	assert.True(t, strings.HasPrefix(res.Lines[1], "Categories: Theft, Burglary"))
	assert.Equal(t, 0, env.Repo.Len())
}

func TestAddFlagOutsideCategory(t *testing.T) {
	env := newTestEnv(t)
	res := env.Engine.Run(`add --category theft --title t --date 2025-10-14 --info i --weapon knife`)
	var flagsErr *domain.InvalidFlagsError
	require.True(t, errors.As(res.Err, &flagsErr))
	assert.Equal(t, []string{"weapon"}, flagsErr.Flags)
	assert.Equal(t, 0, env.Repo.Len())
}

func TestFind(t *testing.T) {
	env := newTestEnv(t)
	env.run(t, addTheft)
	res := env.run(t, "find --keyword ELECTRONICS")
	require.Len(t, res.Lines, 3)
	assert.Contains(t, res.Lines[1], "000001")
	assert.Equal(t, "  Stolen electronics", res.Lines[2])

	assert.Equal(t, []string{`No cases match "zzz".`}, env.run(t, "find --keyword zzz").Lines)
}

func TestSettingRejectedKeepsPattern(t *testing.T) {
	env := newTestEnv(t)
	res := env.Engine.Run("setting --type dateinput --value notapattern")
	assert.ErrorIs(t, res.Err, config.ErrInvalidPattern)
	assert.False(t, res.Mutated)
	assert.Equal(t, "The date input pattern is still %Y-%m-%d.", res.Lines[len(res.Lines)-1])
	assert.Equal(t, config.DefaultDateInput, env.Engine.Settings.DateInputPattern())

	env.run(t, addTheft)
}

func TestSettingChangesFormats(t *testing.T) {
	env := newTestEnv(t)
	res := env.run(t, "setting --type dateinput --value %d-%m-%Y")
	assert.True(t, res.Mutated)
	env.run(t, "setting --type dateoutput --value %Y/%m/%d")

	env.run(t, `add --category murder --title Alley --date 14-10-2025 --info found at dawn`)
	assert.Contains(t, env.run(t, "list").Lines[1], "2025/10/14")

	res = env.Engine.Run(addTheft)
	var perr *parser.Error
	require.True(t, errors.As(res.Err, &perr))
	assert.Equal(t, parser.InvalidValue, perr.Kind)
	assert.Contains(t, env.Journal.String(), `"type":"setting.changed"`)
}

func TestParseErrorsShowUsage(t *testing.T) {
	env := newTestEnv(t)
	res := env.Engine.Run("find")
	var perr *parser.Error
	require.True(t, errors.As(res.Err, &perr))
	assert.Equal(t, "Usage: "+parser.Usage("find"), res.Lines[len(res.Lines)-1])

	res = env.Engine.Run("   ")
	require.Error(t, res.Err)
	assert.False(t, res.Exit)
}

func TestHelpAndBye(t *testing.T) {
	env := newTestEnv(t)
	res := env.run(t, "HELP")
	for _, k := range parser.Keywords() {
		assert.Contains(t, res.Lines, "  "+parser.Usage(k))
	}
	assert.False(t, res.Exit)

	res = env.run(t, "bye")
	assert.True(t, res.Exit)
	assert.False(t, res.Mutated)
}
