package store

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"casetracker/internal/config"
	"casetracker/internal/domain"
	"casetracker/internal/repo"
)

const defaultFileName = "cases.txt"

// LineError describes a persisted line that could not be read.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// EnsureWorkspace creates the workspace state directory if missing.
func EnsureWorkspace(workspace string) (string, error) {
	if workspace == "" {
		workspace = "."
	}
	path := filepath.Join(workspace, config.Dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Path returns the default data file for the workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, config.Dir, defaultFileName)
}

// File is a flat file holding one save-string per line.
type File struct {
	Path string
}

// Load reads every line. Unreadable lines come back as raw entries plus a
// LineError each; they never abort the load. A missing file is empty.
func (f File) Load() ([]repo.Entry, []*LineError, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer fh.Close()

	var (
		entries []repo.Entry
		bad     []*LineError
	)
	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		c, err := domain.ParseSaveString(line)
		if err != nil {
			bad = append(bad, &LineError{Line: n, Text: line, Err: err})
			entries = append(entries, repo.Entry{Raw: line})
			continue
		}
		entries = append(entries, repo.Entry{Case: c})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return entries, bad, nil
}

// Save writes entries in order through a temp file renamed over the target.
func (f File) Save(entries []repo.Entry) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		line := e.Raw
		if e.Case != nil {
			line = e.Case.SaveString()
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}
