package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// LogSink writes audit events to a structured logger.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink that emits events at info level.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Write emits the event as a structured log line.
func (s *LogSink) Write(_ context.Context, event Event) error {
	s.logger.Info().
		Str("audit_id", event.ID).
		Str("action", event.Action).
		Str("status", event.Status).
		Str("request_id", event.RequestID).
		Str("remote_addr", event.RemoteAddr).
		Time("occurred_at", event.OccurredAt).
		Interface("details", event.Details).
		Msg("audit event")
	return nil
}

// MemorySink collects events in memory. Used in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write appends the event.
func (s *MemorySink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of collected events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
