package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zenlarn/contract"
	"zenlarn/domain/event"
)

// Ensure *EventFanout satisfies both roles at compile time.
var (
	_ contract.Worker       = (*EventFanout)(nil)
	_ contract.IBroadcaster = (*EventFanout)(nil)
)

// EventFanout delivers stored events to every connection subscribed to the
// event's channel, plus a fixed set of permanent sinks (index, projections).
//
// A single worker drains the broadcast channel, so events enter fan-out in
// the order they were enqueued: messages published by one sender keep their
// publish order per channel. Across senders no global order is guaranteed.
//
// Each sink delivery is bounded by sinkTimeout; a slow or dead connection
// loses that one event instead of stalling the whole channel.
type EventFanout struct {
	log            *slog.Logger
	registry       contract.IRegistry
	permanentSinks []contract.EventSink
	broadcasts     chan event.DomainEvent
	sinkTimeout    time.Duration
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	permanentSinks []contract.EventSink, bufferSize int,
	sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:            log,
		registry:       registry,
		permanentSinks: permanentSinks,
		broadcasts:     make(chan event.DomainEvent, bufferSize),
		sinkTimeout:    sinkTimeout,
	}
}

// Broadcast enqueues a stored event for delivery. It blocks when the buffer
// is full rather than dropping: the publish path must not reorder or lose
// events that were already persisted.
func (w *EventFanout) Broadcast(ctx context.Context, e event.DomainEvent) error {
	select {
	case w.broadcasts <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fan-out")
			return ctx.Err()
		case evt, ok := <-w.broadcasts:
			if !ok {
				w.log.Debug("Broadcast channel is closed")
				return nil
			}
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout snapshots the channel's member sinks at the moment of delivery and
// pushes the event to each of them concurrently, then to the permanent
// sinks. It returns once every delivery finished or timed out.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	sinks := w.registry.SinksFor(evt.Channel())

	var wg sync.WaitGroup
	for _, sink := range append(sinks, w.permanentSinks...) {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			deliveryCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := s.Consume(deliveryCtx, evt); err != nil {
				w.log.Warn("Sink delivery failed",
					"channel_id", evt.Channel(),
					"error", err)
			}
		}(sink)
	}
	wg.Wait()
}
