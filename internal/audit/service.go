package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// Service fans audit events out to a sink. A sink failure never propagates
// to the caller; it is logged and dropped, since an audit failure must not
// fail the administrative action itself.
type Service struct {
	sink   Sink
	logger zerolog.Logger
}

// NewService creates an audit service writing to the given sink.
func NewService(sink Sink, logger zerolog.Logger) *Service {
	return &Service{sink: sink, logger: logger}
}

// Record writes the event to the sink.
func (s *Service) Record(ctx context.Context, event Event) {
	if s == nil || s.sink == nil {
		return
	}
	if err := s.sink.Write(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("action", event.Action).Msg("audit sink write failed")
	}
}
