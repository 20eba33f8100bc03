package runtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"zenlarn/domain"
	"zenlarn/domain/event"
)

type Sink struct {
	name string
}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func TestRegistry_Subscribe_One_Channel_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	channelID := domain.ChannelID("c1")
	sink := Sink{name: "a"}

	// Given no connection is registered
	req.Nil(registry.SinksFor(channelID))

	// When a connection subscribes a channel
	registry.Subscribe(channelID, connID, sink)

	// Then
	req.Len(registry.SinksFor(channelID), 1)
	req.Contains(registry.SinksFor(channelID), sink)
	req.Equal(1, registry.MemberCount(channelID))
	req.Equal([]domain.ChannelID{channelID}, registry.Channels(connID))
}

func TestRegistry_Subscribe_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	channelID := domain.ChannelID("c1")
	sink := Sink{name: "a"}

	// When the same connection subscribes the same channel twice
	registry.Subscribe(channelID, connID, sink)
	registry.Subscribe(channelID, connID, sink)

	// Then the member set still holds one entry, no duplicate delivery
	req.Len(registry.SinksFor(channelID), 1)
	req.Equal(1, registry.MemberCount(channelID))
}

func TestRegistry_Subscribe_One_Channel_Multiple_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID1 := domain.NewConnectionID()
	connID2 := domain.NewConnectionID()
	channelID := domain.ChannelID("c1")
	sink1 := Sink{name: "a"}
	sink2 := Sink{name: "b"}

	// When connections subscribe a channel
	registry.Subscribe(channelID, connID1, sink1)
	registry.Subscribe(channelID, connID2, sink2)

	// Then
	req.Len(registry.SinksFor(channelID), 2)
	req.Contains(registry.SinksFor(channelID), sink1)
	req.Contains(registry.SinksFor(channelID), sink2)
}

func TestRegistry_Unsubscribe_One_Channel_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	channelID := domain.ChannelID("c1")
	sink := Sink{name: "a"}

	// Given a connection subscribed a channel
	registry.Subscribe(channelID, connID, sink)

	// When the connection unsubscribes
	registry.Unsubscribe(channelID, connID)

	// Then no member is left and the channel entry is gone
	req.Nil(registry.SinksFor(channelID))
	req.Empty(registry.Channels(connID))
}

func TestRegistry_Unsubscribe_Keeps_Other_Connections(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID1 := domain.NewConnectionID()
	connID2 := domain.NewConnectionID()
	channelID := domain.ChannelID("c1")
	sink1 := Sink{name: "a"}
	sink2 := Sink{name: "b"}

	registry.Subscribe(channelID, connID1, sink1)
	registry.Subscribe(channelID, connID2, sink2)

	// When one connection unsubscribes
	registry.Unsubscribe(channelID, connID1)

	// Then only the other one remains
	req.Len(registry.SinksFor(channelID), 1)
	req.Contains(registry.SinksFor(channelID), sink2)
}

func TestRegistry_UnsubscribeAll_Releases_Every_Channel(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := domain.NewConnectionID()
	other := domain.NewConnectionID()
	channelA := domain.ChannelID("a")
	channelB := domain.ChannelID("b")
	sink := Sink{name: "gone"}
	otherSink := Sink{name: "stays"}

	// Given a connection subscribed to channels {A, B}
	registry.Subscribe(channelA, connID, sink)
	registry.Subscribe(channelB, connID, sink)
	registry.Subscribe(channelA, other, otherSink)

	// When the connection disconnects
	registry.UnsubscribeAll(connID)

	// Then it is removed from the member sets of both A and B
	req.NotContains(registry.SinksFor(channelA), sink)
	req.Nil(registry.SinksFor(channelB))
	req.Empty(registry.Channels(connID))

	// And the other connection is untouched
	req.Len(registry.SinksFor(channelA), 1)
	req.Contains(registry.SinksFor(channelA), otherSink)
}
