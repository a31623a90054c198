package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"casetracker/internal/config"
)

const (
	CaseAdded      = "case.added"
	CaseEdited     = "case.edited"
	CaseClosed     = "case.closed"
	CaseReopened   = "case.reopened"
	CaseDeleted    = "case.deleted"
	SettingChanged = "setting.changed"
)

type EventPayload map[string]any

// Event is one journal line.
type Event struct {
	TS      string       `json:"ts"`
	Type    string       `json:"type"`
	CaseID  string       `json:"case_id,omitempty"`
	Payload EventPayload `json:"payload,omitempty"`
}

// Path returns the journal file for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, config.Dir, "events.jsonl")
}

// Writer appends events as JSON lines. A nil W discards them.
type Writer struct {
	W   io.Writer
	Now func() time.Time
}

func (w Writer) Append(evtType, caseID string, payload EventPayload) error {
	if w.W == nil {
		return nil
	}
	if w.Now == nil {
		w.Now = time.Now
	}
	evt := Event{
		TS:      w.Now().UTC().Format(time.RFC3339),
		Type:    evtType,
		CaseID:  caseID,
		Payload: payload,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	_, err = w.W.Write(append(data, '\n'))
	return err
}

// OpenFile opens the journal for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// Tail returns the last n events from r. Lines that do not decode are
// skipped.
func Tail(r io.Reader, n int) ([]Event, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]Event, 0, n)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		var evt Event
		if err := json.Unmarshal(sc.Bytes(), &evt); err != nil {
			continue
		}
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, evt)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ring, nil
}

// TailFile is Tail over the journal at path. A missing journal is empty.
func TailFile(path string, n int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return Tail(f, n)
}
