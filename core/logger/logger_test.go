package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime() time.Time {
	// Go's reference timestamp with a different value in each position.
	return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestRecorderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	r.timeSource = fixedTime

	require.NoError(t, r.SessionStart())
	require.NoError(t, r.Command([]string{"echo", "hello"}))
	require.NoError(t, r.CommandFailed([]string{"cat", "<"}, errors.New("expected a file")))
	require.NoError(t, r.SessionEnd())

	var entries []*LogEntry
	err := ReadJSONLinesLog(&buf, func(le *LogEntry) {
		entries = append(entries, le)
	})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, EventSessionStart, entries[0].Event)
	assert.Equal(t, EventCommand, entries[1].Event)
	assert.Equal(t, []string{"echo", "hello"}, entries[1].Command)
	assert.Equal(t, EventCommandFailed, entries[2].Event)
	assert.Equal(t, "expected a file", entries[2].Error)
	assert.Equal(t, EventSessionEnd, entries[3].Event)

	for _, e := range entries {
		assert.True(t, e.Timestamp.Equal(fixedTime()), "timestamp %v", e.Timestamp)
	}
}

func TestRecorderWritesOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	r.timeSource = fixedTime

	require.NoError(t, r.Command([]string{"ls"}))
	require.NoError(t, r.Command([]string{"pwd"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestNilRecorderDropsEverything(t *testing.T) {
	var r *Recorder

	assert.NoError(t, r.SessionStart())
	assert.NoError(t, r.Command([]string{"ls"}))
	assert.NoError(t, r.CommandFailed(nil, errors.New("x")))
	assert.NoError(t, r.SessionEnd())
}

func TestReadJSONLinesLogRejectsGarbage(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{not json}"), func(*LogEntry) {})
	assert.Error(t, err)
}
