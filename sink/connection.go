package sink

import (
	"context"

	"zenlarn/domain/event"
	"zenlarn/errors"
)

// ConnectionSink buffers events for a single live connection.
// The websocket write pump drains Events and turns each one into a frame.
type ConnectionSink struct {
	Events chan event.DomainEvent
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by the fanout worker.
// A full buffer means the peer is too slow to keep up; the event is
// reported as undeliverable for this connection only, other sinks are
// unaffected.
func (s *ConnectionSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrDeliveryFailure
	}
}
