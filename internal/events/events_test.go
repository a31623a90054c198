package events

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC) }

func TestAppend(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{W: &buf, Now: fixedNow}
	require.NoError(t, w.Append(CaseEdited, "00000A", EventPayload{"flags": []string{"title"}}))
	require.NoError(t, w.Append(SettingChanged, "", EventPayload{"type": "dateinput"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"ts":"2025-10-14T09:30:00Z","type":"case.edited","case_id":"00000A","payload":{"flags":["title"]}}`, lines[0])
	assert.NotContains(t, lines[1], "case_id")
}

func TestAppendDiscard(t *testing.T) {
	assert.NoError(t, Writer{}.Append(CaseAdded, "00000A", nil))
}

func TestTail(t *testing.T) {
	var buf bytes.Buffer
	w := Writer{W: &buf, Now: fixedNow}
	for _, typ := range []string{CaseAdded, CaseClosed, CaseReopened, CaseDeleted} {
		require.NoError(t, w.Append(typ, "00000A", nil))
	}
	buf.WriteString("{broken\n")

	got, err := Tail(bytes.NewReader(buf.Bytes()), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, CaseReopened, got[0].Type)
	assert.Equal(t, CaseDeleted, got[1].Type)

	got, err = Tail(bytes.NewReader(buf.Bytes()), 10)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = Tail(bytes.NewReader(buf.Bytes()), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileRoundTrip(t *testing.T) {
	path := Path(t.TempDir())
	got, err := TailFile(path, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, Writer{W: f, Now: fixedNow}.Append(CaseAdded, "00000A", EventPayload{"category": "Theft"}))
	require.NoError(t, f.Close())

	got, err = TailFile(path, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Theft", got[0].Payload["category"])
	assert.Equal(t, filepath.Join(filepath.Dir(path), "events.jsonl"), path)
}
