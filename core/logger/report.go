package logger

import (
	"encoding/json"
	"sort"
	"strings"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Command       CommandReport       `json:"command_report"`
	CommandFailed CommandFailedReport `json:"command_failed_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch le.Event {
	case EventSessionStart:
		r.Sessions++
	case EventSessionEnd:
		// Counted at session_start.
	case EventCommand:
		r.Command.update(le)
	case EventCommandFailed:
		r.CommandFailed.update(le)
	default:
		r.InvalidEntries.Increment(string(le.Event))
	}
}

type CommandReport struct {
	// Name of the program or builtin at the head of the line.
	CommandNames StrCounter `json:"command_names"`
	// Full command lines and their counts.
	CommandLines StrCounter `json:"command_lines"`
}

func (r *CommandReport) update(le *LogEntry) {
	if len(le.Command) > 0 {
		r.CommandNames.Increment(le.Command[0])
	}
	r.CommandLines.Increment(strings.Join(le.Command, " "))
}

type CommandFailedReport struct {
	CommandNames StrCounter   `json:"command_names"`
	Failures     *PathCounter `json:"failures"`
}

func (r *CommandFailedReport) update(le *LogEntry) {
	if r.Failures == nil {
		r.Failures = NewPathCounter("command", "error")
	}

	name := ""
	if len(le.Command) > 0 {
		name = le.Command[0]
	}
	r.CommandNames.Increment(name)
	r.Failures.Increment(name, le.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of string tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
