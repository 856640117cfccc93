// Package audit records administrative actions (threshold changes) as
// structured events. Events are never persisted beyond the configured sink;
// the default sink writes them to the application log.
package audit

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Event statuses
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Event is a single audit record.
type Event struct {
	ID         string         `json:"id"`
	Action     string         `json:"action"`
	Status     string         `json:"status"`
	RequestID  string         `json:"request_id,omitempty"`
	RemoteAddr string         `json:"remote_addr,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Details    map[string]any `json:"details,omitempty"`
}

// NewEvent builds an event from an HTTP request, carrying the chi request ID
// and remote address for traceability.
func NewEvent(r *http.Request, action string) Event {
	e := Event{
		ID:         uuid.NewString(),
		Action:     action,
		Status:     StatusSuccess,
		OccurredAt: time.Now().UTC(),
	}
	if r != nil {
		e.RequestID = middleware.GetReqID(r.Context())
		e.RemoteAddr = r.RemoteAddr
	}
	return e
}

// WithDetails attaches structured detail to the event.
func (e Event) WithDetails(details map[string]any) Event {
	e.Details = details
	return e
}

// Failed marks the event as failed.
func (e Event) Failed() Event {
	e.Status = StatusFailure
	return e
}

// Sink receives audit events.
type Sink interface {
	Write(ctx context.Context, event Event) error
}
