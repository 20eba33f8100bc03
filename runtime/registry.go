// Package runtime handles event propagation between live connections.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"sync"

	"zenlarn/contract"
	"zenlarn/domain"
)

type Set map[domain.ConnectionID]struct{}

// Registry is the only mutable shared in-memory structure of the core.
// It owns three views kept consistent under one lock:
// sinks (connection -> delivery channel), members (channel -> connections)
// and joined (connection -> channels), the reverse index that makes
// disconnect cleanup a single operation.
type Registry struct {
	mu      sync.RWMutex
	sinks   map[domain.ConnectionID]contract.EventSink
	members map[domain.ChannelID]Set
	joined  map[domain.ConnectionID]map[domain.ChannelID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:   make(map[domain.ConnectionID]contract.EventSink),
		members: make(map[domain.ChannelID]Set),
		joined:  make(map[domain.ConnectionID]map[domain.ChannelID]struct{}),
	}
}

// SinksFor retrieves all active delivery channels for a channel.
// The returned slice is a snapshot: a connection unsubscribing mid-broadcast
// may still receive that one in-flight event, never a later one.
// Returns nil if the channel has no connected members.
func (r *Registry) SinksFor(channelID domain.ChannelID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.members[channelID]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for connID := range members {
		if sink, exists := r.sinks[connID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Subscribe registers a connection's delivery channel and adds it to a
// channel's member set. Subscribing the same pair twice is a no-op beyond
// refreshing the sink, so a client re-joining never duplicates delivery.
func (r *Registry) Subscribe(channelID domain.ChannelID, connID domain.ConnectionID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks[connID] = sink

	if _, ok := r.members[channelID]; !ok {
		r.members[channelID] = make(Set)
	}
	r.members[channelID][connID] = struct{}{}

	if _, ok := r.joined[connID]; !ok {
		r.joined[connID] = make(map[domain.ChannelID]struct{})
	}
	r.joined[connID][channelID] = struct{}{}
}

// Unsubscribe removes a connection from one channel's member set.
// Empty sets are dropped so the maps don't leak over time.
func (r *Registry) Unsubscribe(channelID domain.ChannelID, connID domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeMember(channelID, connID)

	if channels, ok := r.joined[connID]; ok {
		delete(channels, channelID)
		if len(channels) == 0 {
			delete(r.joined, connID)
			delete(r.sinks, connID)
		}
	}
}

// UnsubscribeAll releases every subscription a connection holds, atomically.
// Called on transport disconnect: once it returns, no broadcast can reach
// the connection anymore.
func (r *Registry) UnsubscribeAll(connID domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for channelID := range r.joined[connID] {
		r.removeMember(channelID, connID)
	}
	delete(r.joined, connID)
	delete(r.sinks, connID)
}

// Channels returns the channels a connection is currently subscribed to.
func (r *Registry) Channels(connID domain.ConnectionID) []domain.ChannelID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var channels []domain.ChannelID
	for channelID := range r.joined[connID] {
		channels = append(channels, channelID)
	}
	return channels
}

// MemberCount reports the number of distinct connections in a channel.
func (r *Registry) MemberCount(channelID domain.ChannelID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members[channelID])
}

// removeMember must be called with the write lock held.
func (r *Registry) removeMember(channelID domain.ChannelID, connID domain.ConnectionID) {
	if members, ok := r.members[channelID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.members, channelID)
		}
	}
}
