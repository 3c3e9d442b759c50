// Package pilotlog defines the core's only logging-shaped dependency: an
// injectable event sink. The core never imports a logging library directly
// (spec.md §9, "Global log state is pushed out of the core") — it emits
// Events through whatever Sink the embedding program supplies.
package pilotlog

import "fmt"

// Level is an event's severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is one structured occurrence emitted by the controller or container.
type Event struct {
	Level   Level
	Message string
	// Fields carries structured context (round id, work amount, ...).
	Fields map[string]interface{}
}

// Sink receives Events. Implementations must be safe to call from the
// controller's single session-loop goroutine; the core never calls Sink
// concurrently with itself.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event; session.NewController installs it by default.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}

// Infof builds and emits an info-level event with a formatted message.
func Infof(s Sink, fields map[string]interface{}, format string, args ...interface{}) {
	s.Emit(Event{Level: LevelInfo, Message: fmt.Sprintf(format, args...), Fields: fields})
}

// Warnf builds and emits a warn-level event with a formatted message.
func Warnf(s Sink, fields map[string]interface{}, format string, args ...interface{}) {
	s.Emit(Event{Level: LevelWarn, Message: fmt.Sprintf(format, args...), Fields: fields})
}

// Errorf builds and emits an error-level event with a formatted message.
func Errorf(s Sink, fields map[string]interface{}, format string, args ...interface{}) {
	s.Emit(Event{Level: LevelError, Message: fmt.Sprintf(format, args...), Fields: fields})
}
