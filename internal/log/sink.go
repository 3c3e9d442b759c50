// Package log implements domain/pilotlog.Sink over the standard log package,
// leveled by the LOG_LEVEL environment variable — the ambient logging
// implementation spec.md §9 keeps out of the core.
package log

import (
	"fmt"
	"log"
	"os"
	"sort"

	"pilot/domain/pilotlog"
)

// Verbosity controls which event levels are actually printed.
type Verbosity int

const (
	VerbosityError Verbosity = iota
	VerbosityWarn
	VerbosityInfo
	VerbosityDebug
)

// Sink prints pilotlog.Events through the standard logger, gated by a
// configured Verbosity, in the teacher's leveled-logger style.
type Sink struct {
	verbosity Verbosity
}

// New creates a Sink at the given verbosity.
func New(v Verbosity) *Sink { return &Sink{verbosity: v} }

// NewFromEnv builds a Sink from the LOG_LEVEL environment variable
// (ERROR|WARN|INFO|DEBUG), defaulting to INFO.
func NewFromEnv() *Sink {
	v := VerbosityInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		v = VerbosityError
	case "WARN":
		v = VerbosityWarn
	case "INFO":
		v = VerbosityInfo
	case "DEBUG":
		v = VerbosityDebug
	}
	return New(v)
}

// Emit implements pilotlog.Sink.
func (s *Sink) Emit(ev pilotlog.Event) {
	threshold := levelThreshold(ev.Level)
	if s.verbosity < threshold {
		return
	}
	log.Printf("[%s] %s%s", ev.Level, ev.Message, formatFields(ev.Fields))
}

func levelThreshold(l pilotlog.Level) Verbosity {
	switch l {
	case pilotlog.LevelError:
		return VerbosityError
	case pilotlog.LevelWarn:
		return VerbosityWarn
	case pilotlog.LevelInfo:
		return VerbosityInfo
	default:
		return VerbosityDebug
	}
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf(" %s=%v", k, fields[k])
	}
	return out
}
