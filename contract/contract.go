//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"zenlarn/domain"
	"zenlarn/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks live connections and their channel subscriptions.
// Subscribing the same (channel, connection) pair twice is idempotent:
// fan-out never double-delivers.
type IRegistry interface {
	SinksFor(channelID domain.ChannelID) []EventSink
	Subscribe(channelID domain.ChannelID, connID domain.ConnectionID, sink EventSink)
	Unsubscribe(channelID domain.ChannelID, connID domain.ConnectionID)
	UnsubscribeAll(connID domain.ConnectionID)
}

// IBroadcaster accepts durably stored events for delivery to every
// connection currently subscribed to the event's channel.
type IBroadcaster interface {
	Broadcast(ctx context.Context, e event.DomainEvent) error
}
