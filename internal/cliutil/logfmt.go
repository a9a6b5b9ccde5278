package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// TrialEvent is a lifecycle observation for a single trial.
type TrialEvent struct {
	Timestamp time.Time
	Trial     string
	PID       int
	Level     string
	Message   string
	Source    string
}

// LogRecord represents a structured trial event ready for JSON encoding.
type LogRecord struct {
	Timestamp time.Time `json:"ts"`
	Trial     string    `json:"trial"`
	PID       int       `json:"pid"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
	Source    string    `json:"source"`
}

// NewLogRecord converts a trial event into a structured log record.
func NewLogRecord(event TrialEvent) LogRecord {
	level := event.Level
	if level == "" {
		if inferred := inferLogLevel(event.Message); inferred != "" {
			level = inferred
		} else {
			level = "info"
		}
	}
	source := event.Source
	if source == "" {
		source = "keeper"
	}
	return LogRecord{
		Timestamp: event.Timestamp,
		Trial:     event.Trial,
		PID:       event.PID,
		Level:     level,
		Message:   event.Message,
		Source:    source,
	}
}

var levelTokenPattern = regexp.MustCompile(`(?i)\b(error|warn|info)\b`)

func inferLogLevel(message string) string {
	matches := levelTokenPattern.FindStringSubmatch(message)
	if len(matches) < 2 {
		return ""
	}
	switch strings.ToLower(matches[1]) {
	case "error":
		return "error"
	case "warn":
		return "warn"
	case "info":
		return "info"
	default:
		return ""
	}
}

// EncodeLogEvent encodes a trial event to JSON, reporting errors to stderr if needed.
func EncodeLogEvent(enc *json.Encoder, stderr io.Writer, event TrialEvent) {
	if enc == nil {
		return
	}
	record := NewLogRecord(event)
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if err := enc.Encode(&record); err != nil {
		fmt.Fprintf(stderr, "error: encode log: %v\n", err)
	}
}
