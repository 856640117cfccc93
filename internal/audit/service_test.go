package audit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestService_Record(t *testing.T) {
	sink := NewMemorySink()
	svc := NewService(sink, zerolog.Nop())

	event := NewEvent(nil, "thresholds.update").
		WithDetails(map[string]any{"etag": "abc"})
	svc.Record(context.Background(), event)

	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got := events[0]
	if got.Action != "thresholds.update" {
		t.Errorf("Action = %s, want thresholds.update", got.Action)
	}
	if got.Status != StatusSuccess {
		t.Errorf("Status = %s, want %s", got.Status, StatusSuccess)
	}
	if got.ID == "" {
		t.Error("expected generated event ID")
	}
	if got.Details["etag"] != "abc" {
		t.Errorf("Details = %v, want etag entry", got.Details)
	}
}

func TestNewEvent_FromRequest(t *testing.T) {
	req := httptest.NewRequest("PUT", "/v1/thresholds", nil)
	event := NewEvent(req, "thresholds.update")

	if event.RemoteAddr == "" {
		t.Error("expected remote address from request")
	}
	if event.OccurredAt.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestEvent_Failed(t *testing.T) {
	event := NewEvent(nil, "thresholds.update").Failed()
	if event.Status != StatusFailure {
		t.Errorf("Status = %s, want %s", event.Status, StatusFailure)
	}
}

type failingSink struct{}

func (failingSink) Write(context.Context, Event) error { return errors.New("sink down") }

func TestService_SinkFailureDoesNotPropagate(t *testing.T) {
	svc := NewService(failingSink{}, zerolog.Nop())
	// must not panic or surface the sink error
	svc.Record(context.Background(), NewEvent(nil, "thresholds.update"))
}

func TestService_NilSafe(t *testing.T) {
	var svc *Service
	svc.Record(context.Background(), NewEvent(nil, "noop"))
}
