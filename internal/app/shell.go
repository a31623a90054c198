package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"casetracker/internal/ui"
)

// Shell is the read-eval-print loop over a session.
type Shell struct {
	Session *Session
	In      io.Reader
	Printer *ui.Printer
	// Prompt is written to PromptOut before each line when set.
	Prompt    string
	PromptOut io.Writer
}

// Run reads commands until bye, end of input or ctx is done.
func (sh *Shell) Run(ctx context.Context) error {
	sh.Printer.Welcome(sh.Session.Repo.Len())
	sc := bufio.NewScanner(sh.In)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if sh.Prompt != "" && sh.PromptOut != nil {
			fmt.Fprint(sh.PromptOut, sh.Prompt)
		}
		if !sc.Scan() {
			return sc.Err()
		}
		res := sh.Session.Execute(sc.Text())
		if res.Err != nil {
			sh.Printer.ShowError(res.Lines...)
		} else {
			sh.Printer.Show(res.Lines...)
		}
		if res.Exit {
			return nil
		}
	}
}
