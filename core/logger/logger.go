// Package logger records interpreter events as newline-delimited JSON for
// post-session inspection.
package logger

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// EventType names the kind of an event log entry.
type EventType string

const (
	EventSessionStart  EventType = "session_start"
	EventSessionEnd    EventType = "session_end"
	EventCommand       EventType = "command"
	EventCommandFailed EventType = "command_failed"
)

// LogEntry is one event in the log.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     EventType `json:"event"`
	// Command holds the tokenized command line, when applicable.
	Command []string `json:"command,omitempty"`
	// Error describes what went wrong for failure events.
	Error string `json:"error,omitempty"`
}

// Recorder serializes events to a writer, one JSON object per line. A nil
// Recorder silently drops everything, so callers never have to branch on
// whether logging is enabled.
type Recorder struct {
	mu         sync.Mutex
	enc        *json.Encoder
	timeSource func() time.Time
}

// NewRecorder returns a Recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{
		enc:        json.NewEncoder(w),
		timeSource: time.Now,
	}
}

// Record writes one entry, stamping it if the timestamp is unset.
func (r *Recorder) Record(entry LogEntry) error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.timeSource()
	}
	return r.enc.Encode(&entry)
}

// SessionStart records the beginning of an interpreter session.
func (r *Recorder) SessionStart() error {
	return r.Record(LogEntry{Event: EventSessionStart})
}

// SessionEnd records the end of an interpreter session.
func (r *Recorder) SessionEnd() error {
	return r.Record(LogEntry{Event: EventSessionEnd})
}

// Command records an executed command line.
func (r *Recorder) Command(argv []string) error {
	return r.Record(LogEntry{Event: EventCommand, Command: argv})
}

// CommandFailed records a command line that could not be executed.
func (r *Recorder) CommandFailed(argv []string, err error) error {
	entry := LogEntry{Event: EventCommandFailed, Command: argv}
	if err != nil {
		entry.Error = err.Error()
	}
	return r.Record(entry)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
