// Package domain contains core concepts of the messaging system.
// This file defines Channel entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChannelID string

func NewChannelID() ChannelID {
	return ChannelID(uuid.NewString())
}

// Channel is a named, access-controlled topic.
// The participant set is mutated only through an accepted ChannelRequest;
// the creator is added at construction so the set is never empty.
type Channel struct {
	ID           ChannelID
	Name         string
	Owner        string
	Participants []string
	CreatedAt    time.Time
}

func NewChannel(name, owner string, createdAt time.Time) Channel {
	return Channel{
		ID:           NewChannelID(),
		Name:         name,
		Owner:        owner,
		Participants: []string{owner},
		CreatedAt:    createdAt,
	}
}

// HasParticipant reports whether the identity belongs to the channel.
// Participants is a set: order carries no meaning.
func (c Channel) HasParticipant(email string) bool {
	for _, p := range c.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// AddParticipant is idempotent: adding a known member changes nothing.
func (c *Channel) AddParticipant(email string) {
	if c.HasParticipant(email) {
		return
	}
	c.Participants = append(c.Participants, email)
}
